package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"catalogbot/internal/callback"
	"catalogbot/internal/domain"
	"catalogbot/internal/keyboard"
	"catalogbot/internal/repository"

	"go.uber.org/zap"
)

// Screen is a rendered catalog page. Maps and covers are sent before the text.
type Screen struct {
	Template string
	Vars     map[string]interface{}
	Keyboard [][]keyboard.Button
	Covers   []domain.Cover
	Maps     []domain.MapPoint
}

// Navigator turns callback tokens into catalog screens.
// Every call reads the catalog again; nothing is cached between screens.
type Navigator struct {
	categories repository.CategoryRepository
	items      repository.ItemRepository
	infos      repository.InfoRepository
	logger     *zap.Logger
}

// NewNavigator creates a new navigator
func NewNavigator(
	categories repository.CategoryRepository,
	items repository.ItemRepository,
	infos repository.InfoRepository,
	logger *zap.Logger,
) *Navigator {
	return &Navigator{
		categories: categories,
		items:      items,
		infos:      infos,
		logger:     logger,
	}
}

// Navigate computes the screen a token leads to.
// Returns callback.ErrMalformed, domain.ErrNotFound or domain.ErrNoItem when there is nothing to show.
func (n *Navigator) Navigate(ctx context.Context, tok callback.Token, languageID int64) (*Screen, error) {
	switch tok.Command {
	case callback.CommandMenu:
		return n.RootMenu(ctx, languageID)

	case callback.CommandSubmenu:
		categoryID, err := tok.Int64(0)
		if err != nil {
			return nil, err
		}
		return n.Submenu(ctx, categoryID, languageID)

	case callback.CommandItems:
		categoryID, err := tok.Int64(0)
		if err != nil {
			return nil, err
		}
		return n.itemAction(ctx, tok, categoryID, languageID)

	case callback.CommandInfo:
		infoID, err := tok.Int64(0)
		if err != nil {
			return nil, err
		}
		return n.InfoPage(ctx, infoID, languageID)
	}

	return nil, fmt.Errorf("%w: %q", callback.ErrMalformed, tok.String())
}

func (n *Navigator) itemAction(ctx context.Context, tok callback.Token, categoryID, languageID int64) (*Screen, error) {
	action := tok.Arg(1)
	switch action {
	case callback.ActionList:
		return n.ItemList(ctx, categoryID, languageID)
	case callback.ActionBegin:
		return n.FirstItem(ctx, categoryID, languageID)
	case callback.ActionGet, callback.ActionNext, callback.ActionPrev:
	default:
		return nil, fmt.Errorf("%w: unknown item action in %q", callback.ErrMalformed, tok.String())
	}

	itemID, err := tok.Int64(2)
	if err != nil {
		return nil, err
	}

	switch action {
	case callback.ActionNext:
		return n.NextItem(ctx, categoryID, itemID, languageID)
	case callback.ActionPrev:
		return n.PrevItem(ctx, categoryID, itemID, languageID)
	default:
		return n.Item(ctx, categoryID, itemID, languageID)
	}
}

type menuEntry struct {
	priority int
	info     bool
	id       int64
	button   keyboard.Button
}

// RootMenu lists root categories and info pages together, highest priority first.
// Ties put categories before info pages, then lower ids first.
func (n *Navigator) RootMenu(ctx context.Context, languageID int64) (*Screen, error) {
	categories, err := n.categories.ListRoot(ctx, languageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list root categories: %w", err)
	}

	infos, err := n.infos.List(ctx, languageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list info pages: %w", err)
	}

	entries := make([]menuEntry, 0, len(categories)+len(infos))
	for i := range categories {
		c := &categories[i]
		if unnamed(c.Name) {
			n.logger.Warn("Skipping unnamed category", zap.Int64("category_id", c.ID))
			continue
		}
		entries = append(entries, menuEntry{
			priority: c.Priority,
			id:       c.ID,
			button:   keyboard.Button{Text: c.Name, Data: callback.ForCategory(c)},
		})
	}
	for _, p := range infos {
		if unnamed(p.Name) {
			n.logger.Warn("Skipping unnamed info page", zap.Int64("info_id", p.ID))
			continue
		}
		entries = append(entries, menuEntry{
			priority: p.Priority,
			info:     true,
			id:       p.ID,
			button:   keyboard.Button{Text: p.Name, Data: callback.Info(p.ID)},
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		if a.info != b.info {
			return !a.info
		}
		return a.id < b.id
	})

	buttons := make([]keyboard.Button, 0, len(entries))
	for _, e := range entries {
		buttons = append(buttons, e.button)
	}

	return &Screen{
		Template: MsgMenu,
		Keyboard: keyboard.Chunk(buttons, keyboard.RowSize),
	}, nil
}

// Submenu lists a category's children. A category that lost its children
// since the button was rendered is shown as the leaf it now is.
func (n *Navigator) Submenu(ctx context.Context, categoryID, languageID int64) (*Screen, error) {
	category, err := n.category(ctx, categoryID, languageID)
	if err != nil {
		return nil, err
	}

	if !category.IsSuper() {
		n.logger.Debug("Submenu requested for leaf category", zap.Int64("category_id", categoryID))
		if category.HasModels {
			return n.itemList(ctx, category, languageID)
		}
		return n.FirstItem(ctx, categoryID, languageID)
	}

	children, err := n.categories.ListChildren(ctx, categoryID, languageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}

	buttons := make([]keyboard.Button, 0, len(children))
	for i := range children {
		if unnamed(children[i].Name) {
			n.logger.Warn("Skipping unnamed category", zap.Int64("category_id", children[i].ID))
			continue
		}
		buttons = append(buttons, keyboard.Button{
			Text: children[i].Name,
			Data: callback.ForCategory(&children[i]),
		})
	}

	back, err := n.parentControls(ctx, category, languageID)
	if err != nil {
		return nil, err
	}

	return &Screen{
		Template: MsgSubmenu,
		Vars:     map[string]interface{}{"name": category.Name},
		Keyboard: append(keyboard.Chunk(buttons, keyboard.RowSize), back),
	}, nil
}

// ItemList numbers a leaf category's items in id order
func (n *Navigator) ItemList(ctx context.Context, categoryID, languageID int64) (*Screen, error) {
	category, err := n.category(ctx, categoryID, languageID)
	if err != nil {
		return nil, err
	}

	if category.IsSuper() {
		return n.Submenu(ctx, categoryID, languageID)
	}
	return n.itemList(ctx, category, languageID)
}

func (n *Navigator) itemList(ctx context.Context, category *domain.Category, languageID int64) (*Screen, error) {
	items, err := n.items.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	buttons := make([]keyboard.Button, 0, len(items))
	for i, item := range items {
		buttons = append(buttons, keyboard.Button{
			Label: BtnModel,
			Vars:  map[string]interface{}{"n": i + 1},
			Data:  callback.ItemGet(category.ID, item.ID),
		})
	}

	back, err := n.parentControls(ctx, category, languageID)
	if err != nil {
		return nil, err
	}

	return &Screen{
		Template: MsgItemList,
		Vars:     map[string]interface{}{"name": category.Name, "count": len(items)},
		Keyboard: append(keyboard.Chunk(buttons, keyboard.RowSize), back),
	}, nil
}

// FirstItem opens the item with the lowest id in the category
func (n *Navigator) FirstItem(ctx context.Context, categoryID, languageID int64) (*Screen, error) {
	return n.page(ctx, categoryID, languageID, func(ctx context.Context) (*domain.Item, error) {
		return n.items.First(ctx, categoryID)
	}, domain.ErrNoItem)
}

// NextItem opens the first item with an id greater than itemID
func (n *Navigator) NextItem(ctx context.Context, categoryID, itemID, languageID int64) (*Screen, error) {
	return n.page(ctx, categoryID, languageID, func(ctx context.Context) (*domain.Item, error) {
		return n.items.After(ctx, categoryID, itemID)
	}, domain.ErrNoItem)
}

// PrevItem opens the last item with an id less than itemID
func (n *Navigator) PrevItem(ctx context.Context, categoryID, itemID, languageID int64) (*Screen, error) {
	return n.page(ctx, categoryID, languageID, func(ctx context.Context) (*domain.Item, error) {
		return n.items.Before(ctx, categoryID, itemID)
	}, domain.ErrNoItem)
}

// Item opens a specific item
func (n *Navigator) Item(ctx context.Context, categoryID, itemID, languageID int64) (*Screen, error) {
	return n.page(ctx, categoryID, languageID, func(ctx context.Context) (*domain.Item, error) {
		return n.items.Get(ctx, categoryID, itemID)
	}, domain.ErrNotFound)
}

func (n *Navigator) page(
	ctx context.Context,
	categoryID, languageID int64,
	find func(context.Context) (*domain.Item, error),
	missing error,
) (*Screen, error) {
	category, err := n.category(ctx, categoryID, languageID)
	if err != nil {
		return nil, err
	}

	item, err := find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	if item == nil {
		return nil, missing
	}

	return n.itemScreen(ctx, category, item, languageID)
}

func (n *Navigator) itemScreen(ctx context.Context, category *domain.Category, item *domain.Item, languageID int64) (*Screen, error) {
	entries, err := n.items.Entries(ctx, item.ID, languageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	covers, err := n.items.Covers(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get covers: %w", err)
	}

	prev, err := n.items.Before(ctx, category.ID, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get previous item: %w", err)
	}

	next, err := n.items.After(ctx, category.ID, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get next item: %w", err)
	}

	var rows [][]keyboard.Button

	var pager []keyboard.Button
	if prev != nil {
		pager = append(pager, keyboard.Button{Label: BtnPrev, Data: callback.ItemPrev(category.ID, item.ID)})
	}
	if next != nil {
		pager = append(pager, keyboard.Button{Label: BtnNext, Data: callback.ItemNext(category.ID, item.ID)})
	}
	if len(pager) > 0 {
		rows = append(rows, pager)
	}

	if category.HasModels {
		rows = append(rows, []keyboard.Button{
			{Label: BtnBack, Data: callback.ItemList(category.ID)},
			{Label: BtnAllCategories, Data: callback.Menu()},
		})
	} else {
		back, err := n.parentControls(ctx, category, languageID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, back)
	}

	return &Screen{
		Template: MsgItem,
		Vars: map[string]interface{}{
			"category": category.Name,
			"item_id":  item.ID,
			"entries":  entries,
		},
		Keyboard: rows,
		Covers:   covers,
	}, nil
}

// InfoPage shows an info page with its maps and covers
func (n *Navigator) InfoPage(ctx context.Context, infoID, languageID int64) (*Screen, error) {
	page, err := n.infos.Get(ctx, infoID, languageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get info page: %w", err)
	}
	if page == nil {
		return nil, domain.ErrNotFound
	}

	maps, err := n.infos.Maps(ctx, infoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get maps: %w", err)
	}

	covers, err := n.infos.Covers(ctx, infoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get covers: %w", err)
	}

	return &Screen{
		Template: MsgInfo,
		Vars: map[string]interface{}{
			"name":        page.Name,
			"description": page.Description,
		},
		Keyboard: [][]keyboard.Button{{{Label: BtnAllCategories, Data: callback.Menu()}}},
		Covers:   covers,
		Maps:     maps,
	}, nil
}

// parentControls returns "all categories" for a root category, otherwise a
// back button carrying the parent's own token. A parent deleted meanwhile counts as root.
func (n *Navigator) parentControls(ctx context.Context, category *domain.Category, languageID int64) ([]keyboard.Button, error) {
	all := keyboard.Button{Label: BtnAllCategories, Data: callback.Menu()}
	if category.IsRoot() {
		return []keyboard.Button{all}, nil
	}

	parent, err := n.categories.Get(ctx, *category.ParentID, languageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get parent category: %w", err)
	}
	if parent == nil {
		return []keyboard.Button{all}, nil
	}

	return []keyboard.Button{
		{Label: BtnBack, Data: callback.ForCategory(parent)},
		all,
	}, nil
}

func (n *Navigator) category(ctx context.Context, categoryID, languageID int64) (*domain.Category, error) {
	category, err := n.categories.Get(ctx, categoryID, languageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

// unnamed reports whether a node has no name in any language; Telegram rejects empty button text
func unnamed(name string) bool {
	return strings.TrimSpace(name) == ""
}
