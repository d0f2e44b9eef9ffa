package viewer

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/qeesung/image2ascii/convert"
	_ "golang.org/x/image/webp"

	"shardvault/cli/globals"
	"shardvault/cli/models"
	"shardvault/shared"
)

const maxPreviewSize = 1 << 20
const maxPreviewLines = 30

var imgMimes = [...]string{
	"image/png", "image/jpeg", "image/gif", "image/webp",
}

func isLikelyImage(mimeType string) bool {
	for _, mime := range imgMimes {
		if mimeType == mime {
			return true
		}
	}

	return false
}

func imageToAscii(fileBytes []byte) string {
	img, _, err := image.Decode(bytes.NewReader(fileBytes))
	if err != nil {
		return "Unable to decode image"
	}

	converter := convert.NewImageConverter()
	options := convert.DefaultOptions
	options.Colored = true

	return converter.Image2ASCIIString(img, &options)
}

func previewText(fileBytes []byte) string {
	lines := strings.Split(string(fileBytes), "\n")
	if len(lines) > maxPreviewLines {
		trimmed := fmt.Sprintf("... (%d more lines)", len(lines)-maxPreviewLines)
		lines = append(lines[:maxPreviewLines], trimmed)
	}

	return shared.EscapeString(strings.Join(lines, "\n"))
}

func generateInfoView(item models.AssetItem, size int) string {
	linked := "no"
	if item.Linked {
		linked = "yes"
	}

	return fmt.Sprintf("%s\n"+
		"Type: %s\n"+
		"Size: %s\n"+
		"Linked: %s\n"+
		"Imported: %s\n\n"+
		"Reference: %s",
		shared.EscapeString(item.Name),
		item.MimeType,
		shared.ReadableFileSize(size),
		linked,
		item.Created.Format(time.DateTime),
		shared.AssetReference(item.ID))
}

// fetchAsset downloads an asset's decrypted bytes from the daemon's
// streaming listener.
func fetchAsset(id string) ([]byte, error) {
	port, err := globals.API.StreamPort()
	if err != nil {
		return nil, err
	}

	data, _, err := globals.API.FetchAsset(port, id)
	return data, err
}
