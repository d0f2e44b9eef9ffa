package shards

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"shardvault/cli/commands/confirmation"
	"shardvault/cli/commands/internal"
	"shardvault/cli/commands/shards/editor"
	"shardvault/cli/models"
	"shardvault/cli/styles"
	"shardvault/cli/utils"
)

type Model struct {
	IncomingEvent internal.Event
	ViewRequest   internal.ViewRequest
	Context       *ShardContext

	init     bool
	quitting bool
	table    table.Model
}

type Status struct {
	Success string
	Err     error
}

const Help = `
Enter -> edit | n -> new shard | x -> delete | q -> quit |`

var rows []table.Row
var items []models.ShardItem
var status Status

// ShowShardsModel runs the shards table, dispatching to the editor and
// confirmation subviews as the user requests them. A --list flag skips the
// table and prints a plain listing instead.
func ShowShardsModel() {
	var listOnly bool
	utils.BoolFlag(&listOnly, "list", false, os.Args)
	if listOnly {
		printShardList()
		return
	}

	m, err := RunShardsModel(Model{}, internal.Event{})
	for err == nil && m.ViewRequest.View > internal.NullView {
		var event internal.Event
		var subviewErr error
		switch m.ViewRequest.View {
		case internal.EditorView:
			event, subviewErr = editor.RunModel(m.ViewRequest)
		case internal.ConfirmationView:
			event, subviewErr = confirmation.RunModel(
				internal.Event{
					Type:  m.ViewRequest.Type,
					Shard: m.ViewRequest.Shard,
				},
				m.ViewRequest.Shard.Title)
		}

		utils.HandleCLIError("Error in subview", subviewErr)
		m, err = RunShardsModel(m, event)
	}

	if err != nil && err != huh.ErrUserAborted {
		utils.HandleCLIError("Error in shards view", err)
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.IncomingEvent.Status == internal.StatusOk {
		switch m.IncomingEvent.Type {
		case internal.NewShardRequest:
			m.create(m.IncomingEvent)
		case internal.EditShardRequest:
			m.edit(m.IncomingEvent)
		case internal.DeleteShardRequest:
			m.delete(m.IncomingEvent)
		}

		m.IncomingEvent = internal.Event{}
	}

	m.table.SetRows(rows)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		status.Err = nil
		status.Success = ""
		switch msg.String() {
		case "q", "ctrl+c": // Exit
			m.quitting = true
			return m, tea.Quit
		case "n": // New shard
			return m.NewShardRequest()
		case "enter": // Edit selected shard
			if len(items) == 0 {
				return m, nil
			}

			return m.NewEditRequest(items[m.table.Cursor()])
		case "x": // Delete selected shard
			if len(items) == 0 {
				return m, nil
			}

			return m.NewDeleteRequest(items[m.table.Cursor()])
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting || m.ViewRequest.View > internal.NullView {
		return ""
	}

	shardView := styles.BaseStyle.Render(m.table.View())

	if status.Err != nil {
		shardView += "\n✗ Error: " + status.Err.Error()
	} else if len(status.Success) > 0 {
		shardView += "\n" + status.Success
	} else {
		shardView += fmt.Sprintf("\n %d shard(s) in vault", len(items))
	}

	return styles.BoldStyle.Render("ShardVault > Shards") + "\n" +
		shardView + "\n" +
		styles.HelpStyle.Render(Help)
}

func (m Model) create(event internal.Event) {
	err := m.Context.Create(event.Shard)
	m.finishUpdates(err)
	if err == nil {
		status.Success = fmt.Sprintf("Shard '%s' created", event.Shard.Title)
	}
}

func (m Model) edit(event internal.Event) {
	err := m.Context.Update(event.Shard)
	m.finishUpdates(err)
	if err == nil {
		status.Success = fmt.Sprintf("Shard '%s' updated", event.Shard.Title)
	}
}

func (m Model) delete(event internal.Event) {
	err := m.Context.Delete(event.Shard)
	m.finishUpdates(err)
	if err == nil {
		status.Success = fmt.Sprintf("Shard '%s' deleted", event.Shard.Title)
	}
}

func (m Model) finishUpdates(err error) {
	status = Status{}
	if err != nil {
		status.Err = err
	} else {
		items = m.Context.Items
		rows = CreateShardRows(items)
	}
}

func (m Model) NewShardRequest() (tea.Model, tea.Cmd) {
	m.ViewRequest = internal.ViewRequest{
		View: internal.EditorView,
		Type: internal.NewShardRequest,
	}

	return m, tea.Quit
}

func (m Model) NewEditRequest(item models.ShardItem) (tea.Model, tea.Cmd) {
	m.ViewRequest = internal.ViewRequest{
		View:  internal.EditorView,
		Type:  internal.EditShardRequest,
		Shard: item,
	}

	return m, tea.Quit
}

func (m Model) NewDeleteRequest(item models.ShardItem) (tea.Model, tea.Cmd) {
	m.ViewRequest = internal.ViewRequest{
		View:  internal.ConfirmationView,
		Type:  internal.DeleteShardRequest,
		Shard: item,
	}

	return m, tea.Quit
}

func NewModel() (Model, error) {
	ctx, err := FetchShardContext()
	items = ctx.Items
	status.Err = err
	rows = CreateShardRows(items)

	maxTitleLen := 15
	maxTagsLen := 10
	for _, row := range rows {
		maxTitleLen = max(len(row[0]), maxTitleLen)
		maxTagsLen = max(len(row[1]), maxTagsLen)
	}

	columns := []table.Column{
		{Title: "Title", Width: maxTitleLen},
		{Title: "Tags", Width: maxTagsLen},
		{Title: "Updated", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("255")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Background(lipgloss.Color("#2aa2b8"))
	s.Cell = s.Cell.Foreground(lipgloss.Color("#ffffff"))
	t.SetStyles(s)

	m := Model{
		Context: ctx,
		table:   t,
	}

	m.init = true
	return m, err
}

func RunShardsModel(m Model, event internal.Event) (Model, error) {
	if m.init == false {
		m, _ = NewModel()
	}

	m.IncomingEvent = event
	m.ViewRequest = internal.ViewRequest{}

	p := tea.NewProgram(m)
	model, err := p.Run()
	return model.(Model), err
}
