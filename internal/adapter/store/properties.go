package store

import "strings"

// maxRichTextChunk is the store's per-segment length ceiling for rich-text
// content, counted in characters. Long payloads are split across segments
// and concatenated back on read; the split is purely a transport concern
// and must round-trip losslessly.
const maxRichTextChunk = 2000

// page is one entry of a collection as returned by the store's query API.
type page struct {
	ID         string              `json:"id"`
	Properties map[string]property `json:"properties"`
}

// property is the read shape of a single property value. Exactly one of
// the fields is populated, depending on the property's schema type.
type property struct {
	Title    []textRun     `json:"title"`
	RichText []textRun     `json:"rich_text"`
	Select   *selectValue  `json:"select"`
	Number   *float64      `json:"number"`
	URL      *string       `json:"url"`
	Date     *dateValue    `json:"date"`
	Relation []relationRef `json:"relation"`
}

type textRun struct {
	PlainText string `json:"plain_text"`
}

type selectValue struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

type relationRef struct {
	ID string `json:"id"`
}

// titleText concatenates the title runs into one string.
func (p property) titleText() string {
	var b strings.Builder
	for _, run := range p.Title {
		b.WriteString(run.PlainText)
	}
	return b.String()
}

// plainText concatenates the rich-text runs into one string, reversing the
// chunked write.
func (p property) plainText() string {
	var b strings.Builder
	for _, run := range p.RichText {
		b.WriteString(run.PlainText)
	}
	return b.String()
}

func (p property) selectName() string {
	if p.Select == nil {
		return ""
	}
	return p.Select.Name
}

func (p property) numberValue() float64 {
	if p.Number == nil {
		return 0
	}
	return *p.Number
}

func (p property) urlValue() string {
	if p.URL == nil {
		return ""
	}
	return *p.URL
}

func (p property) dateStart() string {
	if p.Date == nil {
		return ""
	}
	return p.Date.Start
}

func (p property) relationIDs() []string {
	ids := make([]string, 0, len(p.Relation))
	for _, ref := range p.Relation {
		ids = append(ids, ref.ID)
	}
	return ids
}

// --- write-side property builders ---

func titleProp(text string) map[string]any {
	return map[string]any{
		"title": []map[string]any{
			{"text": map[string]any{"content": text}},
		},
	}
}

func richTextProp(text string) map[string]any {
	runs := []map[string]any{}
	for _, chunk := range chunkText(text, maxRichTextChunk) {
		runs = append(runs, map[string]any{
			"text": map[string]any{"content": chunk},
		})
	}
	return map[string]any{"rich_text": runs}
}

func numberProp(v float64) map[string]any {
	return map[string]any{"number": v}
}

func urlProp(u string) map[string]any {
	if u == "" {
		return map[string]any{"url": nil}
	}
	return map[string]any{"url": u}
}

func dateProp(isoStart string) map[string]any {
	return map[string]any{
		"date": map[string]any{"start": isoStart},
	}
}

func relationProp(ids []string) map[string]any {
	refs := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, map[string]any{"id": id})
	}
	return map[string]any{"relation": refs}
}

// chunkText splits s into segments of at most size characters. The limit
// counts characters, not bytes, so the split happens on rune boundaries;
// concatenating the segments reproduces s exactly.
func chunkText(s string, size int) []string {
	if s == "" {
		return nil
	}
	runes := []rune(s)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
