package topics

// Renderer formats topic content for terminal display. The format
// argument is the file extension the topic was loaded from, including
// the dot.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged. It is the default, and the
// right choice when output is not a terminal.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
