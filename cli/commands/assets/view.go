package assets

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"shardvault/cli/commands/assets/picker"
	"shardvault/cli/commands/assets/viewer"
	"shardvault/cli/commands/confirmation"
	"shardvault/cli/commands/internal"
	"shardvault/cli/models"
	"shardvault/cli/styles"
	"shardvault/cli/utils"
	"shardvault/shared"
)

type Model struct {
	IncomingEvent internal.Event
	ViewRequest   internal.ViewRequest
	Context       *AssetContext

	init     bool
	quitting bool
	table    table.Model
}

type Status struct {
	Success string
	Err     error
}

const Help = `
Enter -> view | i -> import | c -> copy ref |
x ---> delete | r -> refresh | q --> quit |`

var rows []table.Row
var items []models.AssetItem
var status Status

// ShowAssetsModel runs the assets table, dispatching to the file picker,
// viewer, and confirmation subviews as the user requests them.
func ShowAssetsModel() {
	m, err := RunAssetsModel(Model{}, internal.Event{})
	for err == nil && m.ViewRequest.View > internal.NullView {
		var event internal.Event
		var subviewErr error
		switch m.ViewRequest.View {
		case internal.ImportView:
			event, subviewErr = picker.RunModel()
		case internal.PreviewView:
			event, subviewErr = viewer.RunModel(m.ViewRequest.Asset)
		case internal.ConfirmationView:
			event, subviewErr = confirmation.RunModel(
				internal.Event{
					Type:  m.ViewRequest.Type,
					Asset: m.ViewRequest.Asset,
				},
				m.ViewRequest.Asset.Name)
		}

		utils.HandleCLIError("Error in subview", subviewErr)
		m, err = RunAssetsModel(m, event)
	}

	if err != nil && err != huh.ErrUserAborted {
		utils.HandleCLIError("Error in assets view", err)
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.IncomingEvent.Status == internal.StatusOk {
		switch m.IncomingEvent.Type {
		case internal.ImportAssetRequest:
			m.importAsset(m.IncomingEvent)
		case internal.DeleteAssetRequest:
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
		case "i": // Import a file
			return m.NewImportRequest()
		case "r": // Refresh from the daemon
			m.refresh()
			return m, nil
		case "enter": // View selected asset
			if len(items) == 0 {
				return m, nil
			}

			return m.NewPreviewRequest(items[m.table.Cursor()])
		case "c": // Copy selected asset's reference
			if len(items) == 0 {
				return m, nil
			}

			m.copyReference(items[m.table.Cursor()])
			return m, nil
		case "x": // Delete selected asset
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

	assetView := styles.BaseStyle.Render(m.table.View())

	if status.Err != nil {
		assetView += "\n✗ Error: " + status.Err.Error()
	} else if len(status.Success) > 0 {
		assetView += "\n" + status.Success
	} else {
		assetView += fmt.Sprintf("\n %d asset(s) in vault", len(items))
	}

	return styles.BoldStyle.Render("ShardVault > Assets") + "\n" +
		assetView + "\n" +
		styles.HelpStyle.Render(Help)
}

func (m Model) importAsset(event internal.Event) {
	item, err := m.Context.Import(event.Value)
	m.finishUpdates(err)
	if err == nil {
		reference := shared.AssetReference(item.ID)
		_ = clipboard.WriteAll(reference)
		status.Success = fmt.Sprintf("Imported '%s' (%s)", item.Name, reference)
	}
}

func (m Model) delete(event internal.Event) {
	err := m.Context.Delete(event.Asset)
	m.finishUpdates(err)
	if err == nil {
		status.Success = fmt.Sprintf("Asset '%s' deleted", event.Asset.Name)
	}
}

func (m Model) refresh() {
	err := m.Context.Refresh()
	m.finishUpdates(err)
}

func (m Model) copyReference(item models.AssetItem) {
	reference := shared.AssetReference(item.ID)
	err := clipboard.WriteAll(reference)
	if err != nil {
		status.Err = err
		return
	}

	status.Success = fmt.Sprintf("Copied %s", reference)
}

func (m Model) finishUpdates(err error) {
	status = Status{}
	if err != nil {
		status.Err = err
	} else {
		items = m.Context.Items
		rows = CreateAssetRows(items)
	}
}

func (m Model) NewImportRequest() (tea.Model, tea.Cmd) {
	m.ViewRequest = internal.ViewRequest{
		View: internal.ImportView,
		Type: internal.ImportAssetRequest,
	}

	return m, tea.Quit
}

func (m Model) NewPreviewRequest(item models.AssetItem) (tea.Model, tea.Cmd) {
	m.ViewRequest = internal.ViewRequest{
		View:  internal.PreviewView,
		Type:  internal.PreviewAssetRequest,
		Asset: item,
	}

	return m, tea.Quit
}

func (m Model) NewDeleteRequest(item models.AssetItem) (tea.Model, tea.Cmd) {
	m.ViewRequest = internal.ViewRequest{
		View:  internal.ConfirmationView,
		Type:  internal.DeleteAssetRequest,
		Asset: item,
	}

	return m, tea.Quit
}

func NewModel() (Model, error) {
	ctx, err := FetchAssetContext()
	items = ctx.Items
	status.Err = err
	rows = CreateAssetRows(items)

	maxNameLen := 15
	maxTypeLen := 12
	for _, row := range rows {
		maxNameLen = max(len(row[0]), maxNameLen)
		maxTypeLen = max(len(row[1]), maxTypeLen)
	}

	columns := []table.Column{
		{Title: "Name", Width: maxNameLen},
		{Title: "Type", Width: maxTypeLen},
		{Title: "Linked", Width: 6},
		{Title: "Created", Width: 10},
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

func RunAssetsModel(m Model, event internal.Event) (Model, error) {
	if m.init == false {
		m, _ = NewModel()
	}

	m.IncomingEvent = event
	m.ViewRequest = internal.ViewRequest{}

	p := tea.NewProgram(m)
	model, err := p.Run()
	return model.(Model), err
}
