package service

import (
	"context"
	"testing"

	"catalogbot/internal/callback"
	"catalogbot/internal/domain"
	"catalogbot/internal/keyboard"
	"catalogbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testLang int64 = 1

type navigatorMocks struct {
	categories *testutil.MockCategoryRepository
	items      *testutil.MockItemRepository
	infos      *testutil.MockInfoRepository
}

func newNavigator() (*Navigator, navigatorMocks) {
	m := navigatorMocks{
		categories: new(testutil.MockCategoryRepository),
		items:      new(testutil.MockItemRepository),
		infos:      new(testutil.MockInfoRepository),
	}
	return NewNavigator(m.categories, m.items, m.infos, testutil.NewTestLogger()), m
}

func navigate(t *testing.T, n *Navigator, data string) (*Screen, error) {
	t.Helper()
	tok, err := callback.Decode(data)
	require.NoError(t, err)
	return n.Navigate(context.Background(), tok, testLang)
}

// expectItem stubs the lookups made while rendering an item page
func (m navigatorMocks) expectItem(categoryID, itemID int64, prev, next *domain.Item) {
	m.items.On("Entries", mock.Anything, itemID, testLang).Return([]domain.Entry{{ItemID: itemID, Description: "desc"}}, nil)
	m.items.On("Covers", mock.Anything, itemID).Return([]domain.Cover{}, nil)
	m.items.On("Before", mock.Anything, categoryID, itemID).Return(prev, nil)
	m.items.On("After", mock.Anything, categoryID, itemID).Return(next, nil)
}

func TestNavigator_ItemPagination(t *testing.T) {
	n, m := newNavigator()

	leaf := testutil.NewTestCategory(5, nil, 0, false)
	item10 := &domain.Item{ID: 10, CategoryID: 5}
	item20 := &domain.Item{ID: 20, CategoryID: 5}
	item30 := &domain.Item{ID: 30, CategoryID: 5}

	m.categories.On("Get", mock.Anything, int64(5), testLang).Return(leaf, nil)
	m.items.On("First", mock.Anything, int64(5)).Return(item10, nil)
	m.expectItem(5, 10, nil, item20)
	m.expectItem(5, 20, item10, item30)
	m.items.On("After", mock.Anything, int64(5), int64(30)).Return(nil, nil)

	screen, err := navigate(t, n, "items,5,begin")
	require.NoError(t, err)
	assert.Equal(t, MsgItem, screen.Template)
	assert.Equal(t, int64(10), screen.Vars["item_id"])
	assert.Equal(t, [][]keyboard.Button{
		{{Label: BtnNext, Data: "items,5,next,10"}},
		{{Label: BtnAllCategories, Data: "menu"}},
	}, screen.Keyboard)

	screen, err = navigate(t, n, screen.Keyboard[0][0].Data)
	require.NoError(t, err)
	assert.Equal(t, int64(20), screen.Vars["item_id"])
	assert.Equal(t, []keyboard.Button{
		{Label: BtnPrev, Data: "items,5,prev,20"},
		{Label: BtnNext, Data: "items,5,next,20"},
	}, screen.Keyboard[0])

	_, err = navigate(t, n, "items,5,next,30")
	assert.ErrorIs(t, err, domain.ErrNoItem)
}

func TestNavigator_PrevItem(t *testing.T) {
	n, m := newNavigator()

	leaf := testutil.NewTestCategory(5, nil, 0, false)
	item10 := &domain.Item{ID: 10, CategoryID: 5}
	item20 := &domain.Item{ID: 20, CategoryID: 5}

	m.categories.On("Get", mock.Anything, int64(5), testLang).Return(leaf, nil)
	m.expectItem(5, 10, nil, item20)
	m.items.On("Before", mock.Anything, int64(5), int64(20)).Return(item10, nil)

	screen, err := navigate(t, n, "items,5,prev,20")
	require.NoError(t, err)
	assert.Equal(t, int64(10), screen.Vars["item_id"])

	_, err = navigate(t, n, "items,5,prev,10")
	assert.ErrorIs(t, err, domain.ErrNoItem)
}

func TestNavigator_BeginOnEmptyCategory(t *testing.T) {
	n, m := newNavigator()

	m.categories.On("Get", mock.Anything, int64(5), testLang).Return(testutil.NewTestCategory(5, nil, 0, false), nil)
	m.items.On("First", mock.Anything, int64(5)).Return(nil, nil)

	_, err := navigate(t, n, "items,5,begin")

	assert.ErrorIs(t, err, domain.ErrNoItem)
}

func TestNavigator_ItemBackControls(t *testing.T) {
	tests := []struct {
		name     string
		category *domain.Category
		parent   *domain.Category
		expected []keyboard.Button
	}{
		{
			name:     "has models goes back to the list",
			category: testutil.NewTestCategory(5, testutil.Int64(2), 0, true),
			expected: []keyboard.Button{
				{Label: BtnBack, Data: "items,5,list"},
				{Label: BtnAllCategories, Data: "menu"},
			},
		},
		{
			name:     "plain leaf goes back to its parent",
			category: testutil.NewTestCategory(5, testutil.Int64(2), 0, false),
			parent:   testutil.NewTestCategory(2, nil, 3, false),
			expected: []keyboard.Button{
				{Label: BtnBack, Data: "submenu,2"},
				{Label: BtnAllCategories, Data: "menu"},
			},
		},
		{
			name:     "root leaf goes back to the menu",
			category: testutil.NewTestCategory(5, nil, 0, false),
			expected: []keyboard.Button{
				{Label: BtnAllCategories, Data: "menu"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, m := newNavigator()

			m.categories.On("Get", mock.Anything, int64(5), testLang).Return(tt.category, nil)
			if tt.parent != nil {
				m.categories.On("Get", mock.Anything, int64(2), testLang).Return(tt.parent, nil)
			}
			m.items.On("Get", mock.Anything, int64(5), int64(10)).Return(&domain.Item{ID: 10, CategoryID: 5}, nil)
			m.expectItem(5, 10, nil, nil)

			screen, err := navigate(t, n, "items,5,get,10")

			require.NoError(t, err)
			require.Len(t, screen.Keyboard, 1)
			assert.Equal(t, tt.expected, screen.Keyboard[0])
		})
	}
}

func TestNavigator_RootMenuOrdering(t *testing.T) {
	n, m := newNavigator()

	m.categories.On("ListRoot", mock.Anything, testLang).Return([]domain.Category{
		{ID: 3, Priority: 5, Name: "C3"},
		{ID: 1, Priority: 10, Name: "C1", ChildCount: 2},
		{ID: 2, Priority: 5, Name: "C2", HasModels: true},
	}, nil)
	m.infos.On("List", mock.Anything, testLang).Return([]domain.InfoPage{
		{ID: 1, Priority: 5, Name: "About"},
		{ID: 9, Priority: 20, Name: "Contacts"},
	}, nil)

	expected := [][]keyboard.Button{
		{{Text: "Contacts", Data: "info,9"}, {Text: "C1", Data: "submenu,1"}},
		{{Text: "C2", Data: "items,2,list"}, {Text: "C3", Data: "items,3,begin"}},
		{{Text: "About", Data: "info,1"}},
	}

	for i := 0; i < 2; i++ {
		screen, err := navigate(t, n, "menu")
		require.NoError(t, err)
		assert.Equal(t, MsgMenu, screen.Template)
		assert.Equal(t, expected, screen.Keyboard)
	}
}

func TestNavigator_Submenu(t *testing.T) {
	n, m := newNavigator()

	m.categories.On("Get", mock.Anything, int64(7), testLang).Return(&domain.Category{ID: 7, ParentID: testutil.Int64(3), ChildCount: 2, Name: "Phones"}, nil)
	m.categories.On("Get", mock.Anything, int64(3), testLang).Return(&domain.Category{ID: 3, ChildCount: 1, Name: "Electronics"}, nil)
	m.categories.On("ListChildren", mock.Anything, int64(7), testLang).Return([]domain.Category{
		{ID: 8, ParentID: testutil.Int64(7), Name: "Android", HasModels: true},
		{ID: 9, ParentID: testutil.Int64(7), Name: "iOS"},
	}, nil)

	screen, err := navigate(t, n, "submenu,7")

	require.NoError(t, err)
	assert.Equal(t, MsgSubmenu, screen.Template)
	assert.Equal(t, "Phones", screen.Vars["name"])
	assert.Equal(t, [][]keyboard.Button{
		{{Text: "Android", Data: "items,8,list"}, {Text: "iOS", Data: "items,9,begin"}},
		{{Label: BtnBack, Data: "submenu,3"}, {Label: BtnAllCategories, Data: "menu"}},
	}, screen.Keyboard)
}

func TestNavigator_SkipsUnnamedNodes(t *testing.T) {
	t.Run("root menu", func(t *testing.T) {
		n, m := newNavigator()

		m.categories.On("ListRoot", mock.Anything, testLang).Return([]domain.Category{
			{ID: 1, Priority: 2, Name: " "},
			{ID: 2, Priority: 1, Name: "Sofas"},
		}, nil)
		m.infos.On("List", mock.Anything, testLang).Return([]domain.InfoPage{{ID: 4, Name: ""}}, nil)

		screen, err := navigate(t, n, "menu")

		require.NoError(t, err)
		assert.Equal(t, [][]keyboard.Button{{{Text: "Sofas", Data: "items,2,begin"}}}, screen.Keyboard)
	})

	t.Run("submenu", func(t *testing.T) {
		n, m := newNavigator()

		m.categories.On("Get", mock.Anything, int64(7), testLang).Return(&domain.Category{ID: 7, ChildCount: 2, Name: "Phones"}, nil)
		m.categories.On("ListChildren", mock.Anything, int64(7), testLang).Return([]domain.Category{
			{ID: 8, ParentID: testutil.Int64(7), Name: ""},
			{ID: 9, ParentID: testutil.Int64(7), Name: "iOS"},
		}, nil)

		screen, err := navigate(t, n, "submenu,7")

		require.NoError(t, err)
		assert.Equal(t, [][]keyboard.Button{
			{{Text: "iOS", Data: "items,9,begin"}},
			{{Label: BtnAllCategories, Data: "menu"}},
		}, screen.Keyboard)
	})
}

func TestNavigator_SubmenuOnLeafShowsItemList(t *testing.T) {
	n, m := newNavigator()

	m.categories.On("Get", mock.Anything, int64(4), testLang).Return(testutil.NewTestCategory(4, nil, 0, true), nil)
	m.items.On("ListByCategory", mock.Anything, int64(4)).Return([]domain.Item{{ID: 11}, {ID: 12}, {ID: 15}}, nil)

	screen, err := navigate(t, n, "submenu,4")

	require.NoError(t, err)
	assert.Equal(t, MsgItemList, screen.Template)
	assert.Equal(t, 3, screen.Vars["count"])
	require.Len(t, screen.Keyboard, 3)
	assert.Equal(t, keyboard.Button{Label: BtnModel, Vars: map[string]interface{}{"n": 1}, Data: "items,4,get,11"}, screen.Keyboard[0][0])
	assert.Equal(t, keyboard.Button{Label: BtnModel, Vars: map[string]interface{}{"n": 3}, Data: "items,4,get,15"}, screen.Keyboard[1][0])
	assert.Equal(t, []keyboard.Button{{Label: BtnAllCategories, Data: "menu"}}, screen.Keyboard[2])
	m.categories.AssertNotCalled(t, "ListChildren", mock.Anything, mock.Anything, mock.Anything)
}

func TestNavigator_ItemListOnSuperShowsSubmenu(t *testing.T) {
	n, m := newNavigator()

	m.categories.On("Get", mock.Anything, int64(4), testLang).Return(testutil.NewTestCategory(4, nil, 1, true), nil)
	m.categories.On("ListChildren", mock.Anything, int64(4), testLang).Return([]domain.Category{{ID: 6, Name: "Child"}}, nil)

	screen, err := navigate(t, n, "items,4,list")

	require.NoError(t, err)
	assert.Equal(t, MsgSubmenu, screen.Template)
	m.items.AssertNotCalled(t, "ListByCategory", mock.Anything, mock.Anything)
}

func TestNavigator_InfoPage(t *testing.T) {
	n, m := newNavigator()

	m.infos.On("Get", mock.Anything, int64(2), testLang).Return(&domain.InfoPage{ID: 2, Name: "Shop", Description: "Open daily"}, nil)
	m.infos.On("Maps", mock.Anything, int64(2)).Return([]domain.MapPoint{{ID: 1, Lat: 41.3, Long: 69.2}}, nil)
	m.infos.On("Covers", mock.Anything, int64(2)).Return([]domain.Cover{{ID: 1, File: "shop.jpg"}}, nil)

	screen, err := navigate(t, n, "info,2")

	require.NoError(t, err)
	assert.Equal(t, MsgInfo, screen.Template)
	assert.Equal(t, "Shop", screen.Vars["name"])
	assert.Len(t, screen.Maps, 1)
	assert.Len(t, screen.Covers, 1)
	assert.Equal(t, [][]keyboard.Button{{{Label: BtnAllCategories, Data: "menu"}}}, screen.Keyboard)
}

func TestNavigator_NotFound(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		setup func(m navigatorMocks)
	}{
		{
			name: "deleted category",
			data: "submenu,42",
			setup: func(m navigatorMocks) {
				m.categories.On("Get", mock.Anything, int64(42), testLang).Return(nil, nil)
			},
		},
		{
			name: "deleted item",
			data: "items,5,get,99",
			setup: func(m navigatorMocks) {
				m.categories.On("Get", mock.Anything, int64(5), testLang).Return(testutil.NewTestCategory(5, nil, 0, false), nil)
				m.items.On("Get", mock.Anything, int64(5), int64(99)).Return(nil, nil)
			},
		},
		{
			name: "deleted info page",
			data: "info,3",
			setup: func(m navigatorMocks) {
				m.infos.On("Get", mock.Anything, int64(3), testLang).Return(nil, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, m := newNavigator()
			tt.setup(m)

			_, err := navigate(t, n, tt.data)

			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestNavigator_MalformedArguments(t *testing.T) {
	tests := []string{
		"submenu",
		"submenu,abc",
		"items,5",
		"items,5,jump",
		"items,5,next",
		"info,x",
	}

	for _, data := range tests {
		t.Run(data, func(t *testing.T) {
			n, _ := newNavigator()

			_, err := navigate(t, n, data)

			assert.ErrorIs(t, err, callback.ErrMalformed)
		})
	}
}
