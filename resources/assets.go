// Package resources provides the generated application icon.
package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"

	"dialtimer/internal/core/sweep"
	"dialtimer/internal/ui/dialface"
)

// IconSeconds is the duration pictured on the icon.
const IconSeconds = 2400

var iconCache sync.Map

// IconImage renders the icon at size by size pixels.
func IconImage(size int) image.Image {
	return dialface.ForState(sweep.Project(IconSeconds), true, false).Render(size, size)
}

// Icon returns the icon as a Fyne resource.
func Icon(size int) (fyne.Resource, error) {
	name := fmt.Sprintf("dialtimer-%d.png", size)
	if cached, ok := iconCache.Load(name); ok {
		return cached.(fyne.Resource), nil
	}

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, IconImage(size)); err != nil {
		return nil, fmt.Errorf("encode icon %s: %w", name, err)
	}

	resource := fyne.NewStaticResource(name, encoded.Bytes())
	iconCache.Store(name, resource)
	return resource, nil
}

// MustIcon returns the icon resource or panics on error.
func MustIcon(size int) fyne.Resource {
	resource, err := Icon(size)
	if err != nil {
		panic(err)
	}
	return resource
}
