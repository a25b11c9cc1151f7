// Package export renders notes as Markdown documents with YAML front matter.
package export

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/foldnote/foldnote-server/internal/domain"
	"github.com/foldnote/foldnote-server/internal/normalize"
)

// ContentType is the media type of rendered documents.
const ContentType = "text/markdown; charset=utf-8"

const delimiter = "---"

// FrontMatter is the metadata block written above the note body.
type FrontMatter struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	FolderID  *string   `yaml:"folder_id"`
	Tags      []string  `yaml:"tags"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Document is a parsed export.
type Document struct {
	FrontMatter
	Content string
}

// Filename returns the download name for note: the slugged title, or the
// note id when the title has no usable characters.
func Filename(note *domain.Note) string {
	name := normalize.Slug(note.Title)
	if name == "" {
		name = note.ID
	}
	return name + ".md"
}

// Markdown renders note with the names of its tags.
func Markdown(note *domain.Note, tags []*domain.Tag) ([]byte, error) {
	fm := FrontMatter{
		ID:        note.ID,
		Title:     note.Title,
		FolderID:  note.FolderID,
		Tags:      make([]string, 0, len(tags)),
		CreatedAt: note.CreatedAt.UTC(),
		UpdatedAt: note.UpdatedAt.UTC(),
	}
	for _, t := range tags {
		fm.Tags = append(fm.Tags, t.Name)
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}

	buf.WriteString(delimiter + "\n\n")
	buf.WriteString(note.Content)
	if note.Content != "" && note.Content[len(note.Content)-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Parse reads a document produced by Markdown.
func Parse(data []byte) (*Document, error) {
	rest, ok := bytes.CutPrefix(data, []byte(delimiter+"\n"))
	if !ok {
		return nil, fmt.Errorf("missing front matter")
	}
	header, body, ok := bytes.Cut(rest, []byte("\n"+delimiter+"\n"))
	if !ok {
		return nil, fmt.Errorf("unterminated front matter")
	}

	var doc Document
	if err := yaml.Unmarshal(header, &doc.FrontMatter); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	body = bytes.TrimPrefix(body, []byte("\n"))
	doc.Content = string(bytes.TrimSuffix(body, []byte("\n")))
	return &doc, nil
}
