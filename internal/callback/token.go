// Package callback encodes and decodes the comma-separated tokens carried by
// inline catalog buttons.
//
// Grammar (first field is the command):
//
//	menu
//	submenu,<categoryID>
//	items,<categoryID>,list
//	items,<categoryID>,get,<itemID>
//	items,<categoryID>,begin
//	items,<categoryID>,next,<afterItemID>
//	items,<categoryID>,prev,<beforeItemID>
//	info,<infoID>
//
// Arguments are numeric ids or fixed words and never contain the delimiter,
// so no escaping is done.
package callback

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"catalogbot/internal/domain"
)

const delimiter = ","

// ErrMalformed is returned for empty or unrecognized tokens
var ErrMalformed = errors.New("malformed callback token")

// Command is the leading field of a token
type Command string

const (
	CommandMenu    Command = "menu"
	CommandSubmenu Command = "submenu"
	CommandItems   Command = "items"
	CommandInfo    Command = "info"
)

// Item actions of the items command
const (
	ActionList  = "list"
	ActionGet   = "get"
	ActionBegin = "begin"
	ActionNext  = "next"
	ActionPrev  = "prev"
)

func (c Command) known() bool {
	switch c {
	case CommandMenu, CommandSubmenu, CommandItems, CommandInfo:
		return true
	}
	return false
}

// Token is a decoded callback token
type Token struct {
	Command Command
	Args    []string
}

// String encodes the token back to its wire form
func (t Token) String() string {
	return Encode(t.Command, t.Args...)
}

// Int64 parses the positional argument i as an id
func (t Token) Int64(i int) (int64, error) {
	if i < 0 || i >= len(t.Args) {
		return 0, fmt.Errorf("%w: missing argument %d in %q", ErrMalformed, i, t.String())
	}
	v, err := strconv.ParseInt(t.Args[i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: argument %d in %q: %v", ErrMalformed, i, t.String(), err)
	}
	return v, nil
}

// Arg returns the positional argument i or an empty string
func (t Token) Arg(i int) string {
	if i < 0 || i >= len(t.Args) {
		return ""
	}
	return t.Args[i]
}

// Encode joins a command and its arguments
func Encode(cmd Command, args ...string) string {
	if len(args) == 0 {
		return string(cmd)
	}
	return string(cmd) + delimiter + strings.Join(args, delimiter)
}

// Decode splits a token into its command and arguments
func Decode(data string) (Token, error) {
	if data == "" {
		return Token{}, fmt.Errorf("%w: empty", ErrMalformed)
	}

	parts := strings.Split(data, delimiter)
	cmd := Command(parts[0])
	if !cmd.known() {
		return Token{}, fmt.Errorf("%w: unknown command %q", ErrMalformed, parts[0])
	}

	return Token{Command: cmd, Args: parts[1:]}, nil
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Menu returns the root menu token
func Menu() string {
	return Encode(CommandMenu)
}

// Submenu returns the token opening a category's children
func Submenu(categoryID int64) string {
	return Encode(CommandSubmenu, id(categoryID))
}

// ItemList returns the token opening the numbered item list of a category
func ItemList(categoryID int64) string {
	return Encode(CommandItems, id(categoryID), ActionList)
}

// ItemBegin returns the token opening the first item of a category
func ItemBegin(categoryID int64) string {
	return Encode(CommandItems, id(categoryID), ActionBegin)
}

// ItemGet returns the token opening a specific item
func ItemGet(categoryID, itemID int64) string {
	return Encode(CommandItems, id(categoryID), ActionGet, id(itemID))
}

// ItemNext returns the token opening the item after itemID
func ItemNext(categoryID, itemID int64) string {
	return Encode(CommandItems, id(categoryID), ActionNext, id(itemID))
}

// ItemPrev returns the token opening the item before itemID
func ItemPrev(categoryID, itemID int64) string {
	return Encode(CommandItems, id(categoryID), ActionPrev, id(itemID))
}

// Info returns the token opening an info page
func Info(infoID int64) string {
	return Encode(CommandInfo, id(infoID))
}

// ForCategory returns the token a button for the category must carry:
// its children when it has any, the numbered list for a has-models leaf,
// otherwise the first item.
func ForCategory(c *domain.Category) string {
	switch {
	case c.IsSuper():
		return Submenu(c.ID)
	case c.HasModels:
		return ItemList(c.ID)
	default:
		return ItemBegin(c.ID)
	}
}
