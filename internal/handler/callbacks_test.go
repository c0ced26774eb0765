package handler

import (
	"context"
	"testing"

	"catalogbot/internal/callback"
	"catalogbot/internal/domain"
	"catalogbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func TestCleanCallbackData_DecodesNoisyTokens(t *testing.T) {
	tests := []struct {
		input   string
		command callback.Command
		args    []string
	}{
		{input: "menu", command: callback.CommandMenu},
		{input: "  submenu,3 ", command: callback.CommandSubmenu, args: []string{"3"}},
		{input: "items,\t7,list", command: callback.CommandItems, args: []string{"7", "list"}},
		{input: "items,5,next,10\n", command: callback.CommandItems, args: []string{"5", "next", "10"}},
		{input: "info,\x002\x01", command: callback.CommandInfo, args: []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := callback.Decode(cleanCallbackData(tt.input))

			require.NoError(t, err)
			assert.Equal(t, tt.command, tok.Command)
			assert.Equal(t, len(tt.args), len(tok.Args))
			for i, arg := range tt.args {
				assert.Equal(t, arg, tok.Arg(i))
			}
		})
	}
}

func TestCleanCallbackData_BlankIsMalformed(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t", "\x00"} {
		_, err := callback.Decode(cleanCallbackData(input))
		assert.ErrorIs(t, err, callback.ErrMalformed, "input %q", input)
	}
}

func TestHandler_CallbackSoftFailures(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		setup func(m handlerMocks)
	}{
		{
			name: "past the last item",
			data: "items,5,next,30",
			setup: func(m handlerMocks) {
				m.categories.On("Get", mock.Anything, int64(5), int64(2)).Return(testutil.NewTestCategory(5, nil, 0, false), nil)
				m.items.On("After", mock.Anything, int64(5), int64(30)).Return(nil, nil)
			},
		},
		{
			name:  "malformed token",
			data:  "bogus",
			setup: func(handlerMocks) {},
		},
		{
			name:  "malformed arguments",
			data:  "submenu,x",
			setup: func(handlerMocks) {},
		},
		{
			name: "deleted info page",
			data: "info,9",
			setup: func(m handlerMocks) {
				m.infos.On("Get", mock.Anything, int64(9), int64(2)).Return(nil, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newHandler(t, Options{})
			tt.setup(m)
			m.transport.On("AnswerCallback", "cb-1").Return(nil)

			err := h.callback(context.Background(), testutil.NewOnboardedUser(1, 2), "cb-1", tt.data, testutil.NewTestLogger())

			require.NoError(t, err)
			assert.Empty(t, sentTexts(m.transport))
			m.transport.AssertCalled(t, "AnswerCallback", "cb-1")
		})
	}
}

func TestHandler_CallbackShowsMenu(t *testing.T) {
	h, m := newHandler(t, Options{})

	m.categories.On("ListRoot", mock.Anything, int64(2)).Return([]domain.Category{{ID: 1, Name: "Sofas", Priority: 1}}, nil)
	m.infos.On("List", mock.Anything, int64(2)).Return([]domain.InfoPage{}, nil)
	m.transport.On("SendText", int64(1), "Catalog", mock.Anything).Return(nil)
	m.transport.On("AnswerCallback", "cb-2").Return(nil)

	err := h.callback(context.Background(), testutil.NewOnboardedUser(1, 2), "cb-2", "menu", testutil.NewTestLogger())

	require.NoError(t, err)
	markup := m.transport.Calls[0].Arguments.Get(2).(*tele.ReplyMarkup)
	assert.Equal(t, [][]tele.InlineButton{{{Text: "Sofas", Data: "items,1,begin"}}}, markup.InlineKeyboard)
	m.transport.AssertCalled(t, "AnswerCallback", "cb-2")
}
