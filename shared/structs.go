package shared

// UnlockRequest opens (or creates) the vault at Path using Password. An
// empty Path falls back to the server's configured vault directory.
type UnlockRequest struct {
	Path     string `json:"path"`
	Password string `json:"password"`
}

type VaultStatusResponse struct {
	Status   string `json:"status"`
	Unlocked bool   `json:"unlocked"`
}

type StreamPortResponse struct {
	Port int `json:"port"`
}

type ShardUpload struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type Shard struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// ImportRequest carries raw asset bytes into the vault. Data is base64
// encoded on the wire by encoding/json.
type ImportRequest struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Data      []byte `json:"data"`
}

type Asset struct {
	ID           string `json:"id"`
	ShardID      string `json:"shardId,omitempty"`
	FilePath     string `json:"filePath"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	CreatedAt    string `json:"createdAt"`
}
