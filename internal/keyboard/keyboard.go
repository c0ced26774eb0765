package keyboard

import tele "gopkg.in/telebot.v3"

const (
	// RowSize is the maximum number of buttons in a keyboard row
	RowSize = 2
	// AlbumSize is the maximum number of photos in one media group
	AlbumSize = 10
)

// Button is an inline button. Label names a message template, rendered with
// Vars, used when Text is empty.
type Button struct {
	Text  string
	Label string
	Vars  map[string]interface{}
	Data  string
}

// Chunk splits items into consecutive groups of at most n elements.
// If n <= 0, every item gets its own group.
func Chunk[T any](items []T, n int) [][]T {
	if n <= 0 {
		n = 1
	}
	chunks := make([][]T, 0, (len(items)+n-1)/n)
	for i := 0; i < len(items); i += n {
		end := i + n
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end])
	}
	return chunks
}

// Inline builds an inline keyboard. Button data is sent as-is so the callback
// arrives without telebot's unique prefix.
func Inline(rows [][]Button) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, 0, len(rows))
	for _, row := range rows {
		r := make([]tele.InlineButton, 0, len(row))
		for _, b := range row {
			r = append(r, tele.InlineButton{Text: b.Text, Data: b.Data})
		}
		inline = append(inline, r)
	}
	markup.InlineKeyboard = inline
	return markup
}

// Reply builds a resized reply keyboard from labels, RowSize per row
func Reply(labels ...string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	var rows []tele.Row
	for _, chunk := range Chunk(labels, RowSize) {
		var buttons []tele.Btn
		for _, label := range chunk {
			buttons = append(buttons, markup.Text(label))
		}
		rows = append(rows, markup.Row(buttons...))
	}
	markup.Reply(rows...)
	return markup
}

// Contact builds a reply keyboard asking for the user's phone.
// Extra labels, such as cancel, go on a second row.
func Contact(label string, extra ...string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	rows := []tele.Row{markup.Row(markup.Contact(label))}
	if len(extra) > 0 {
		var buttons []tele.Btn
		for _, l := range extra {
			buttons = append(buttons, markup.Text(l))
		}
		rows = append(rows, markup.Row(buttons...))
	}
	markup.Reply(rows...)
	return markup
}

// Remove hides the reply keyboard
func Remove() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}
