package export

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ManifestFile is the asset-catalog manifest name inside an imageset.
const ManifestFile = "Contents.json"

// Manifest is the asset-catalog description of one imageset.
type Manifest struct {
	Images []ManifestImage `json:"images"`
	Info   ManifestInfo    `json:"info"`
}

// ManifestImage maps one file to its scale.
type ManifestImage struct {
	Filename string `json:"filename"`
	Idiom    string `json:"idiom"`
	Scale    string `json:"scale"`
}

// ManifestInfo identifies the manifest format.
type ManifestInfo struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

// NewManifest describes variants, smallest scale first.
func NewManifest(variants []Variant) Manifest {
	sorted := append([]Variant(nil), variants...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Scale < sorted[j].Scale })

	m := Manifest{
		Images: make([]ManifestImage, 0, len(sorted)),
		Info:   ManifestInfo{Author: "xcode", Version: 1},
	}
	for _, v := range sorted {
		m.Images = append(m.Images, ManifestImage{
			Filename: v.Filename,
			Idiom:    "universal",
			Scale:    fmt.Sprintf("%dx", v.Scale),
		})
	}
	return m
}

// Marshal renders the manifest as indented JSON.
func (m Manifest) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Files returns a map of scale factor string ("2x") to filename.
func (m Manifest) Files() map[string]string {
	out := make(map[string]string, len(m.Images))
	for _, img := range m.Images {
		out[img.Scale] = img.Filename
	}
	return out
}
