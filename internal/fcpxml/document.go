// Package fcpxml writes an edit timeline as a Final Cut Pro XML (1.9)
// project. Quiet segments are lifted to lane 1 so an editor can ripple
// delete them in one go; loud segments keep their secondary audio on
// negative lanes.
package fcpxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Version is the FCPXML version written.
const Version = "1.9"

// Document is the root <fcpxml> element.
type Document struct {
	XMLName   xml.Name  `xml:"fcpxml"`
	Version   string    `xml:"version,attr"`
	Resources Resources `xml:"resources"`
	Library   Library   `xml:"library"`
}

// Resources holds formats and media assets referenced by clips.
type Resources struct {
	Formats []Format `xml:"format"`
	Assets  []Asset  `xml:"asset"`
}

// Format describes a video format.
type Format struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr"`
	FrameDuration string `xml:"frameDuration,attr"`
	Width         int    `xml:"width,attr"`
	Height        int    `xml:"height,attr"`
}

// Asset is a media file on disk.
type Asset struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr"`
	Format        string `xml:"format,attr,omitempty"`
	Start         string `xml:"start,attr"`
	Duration      string `xml:"duration,attr"`
	HasVideo      int    `xml:"hasVideo,attr,omitempty"`
	HasAudio      int    `xml:"hasAudio,attr"`
	AudioSources  int    `xml:"audioSources,attr"`
	AudioChannels int    `xml:"audioChannels,attr"`
	Src           string `xml:"src,attr"`
}

// Library contains the single event holding the project.
type Library struct {
	Event Event `xml:"event"`
}

// Event groups projects.
type Event struct {
	Name    string  `xml:"name,attr"`
	Project Project `xml:"project"`
}

// Project holds the edited sequence.
type Project struct {
	Name     string   `xml:"name,attr"`
	Sequence Sequence `xml:"sequence"`
}

// Sequence is the project timeline.
type Sequence struct {
	Format   string `xml:"format,attr"`
	TCFormat string `xml:"tcFormat,attr"`
	TCStart  string `xml:"tcStart,attr"`
	Duration string `xml:"duration,attr"`
	Spine    Spine  `xml:"spine"`
}

// Spine is the primary storyline: one video clip per timeline segment.
type Spine struct {
	Clips []Clip `xml:"video"`
}

// Clip is a video clip of the source covering one segment.
type Clip struct {
	Lane     string      `xml:"lane,attr,omitempty"`
	Offset   string      `xml:"offset,attr"`
	Start    string      `xml:"start,attr"`
	Ref      string      `xml:"ref,attr"`
	Duration string      `xml:"duration,attr"`
	Audio    []AudioClip `xml:"audio"`
}

// AudioClip is a connected secondary audio clip.
type AudioClip struct {
	Lane     int    `xml:"lane,attr"`
	Offset   string `xml:"offset,attr"`
	Start    string `xml:"start,attr"`
	Ref      string `xml:"ref,attr"`
	Duration string `xml:"duration,attr"`
}

// Write encodes the document with an XML declaration and DOCTYPE.
func (d *Document) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header+"<!DOCTYPE fcpxml>\n"); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode fcpxml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile writes the document to path.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Path returns the project path for a source: the same name with an
// .fcpxml extension.
func Path(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".fcpxml"
}
