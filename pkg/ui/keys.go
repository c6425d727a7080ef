package ui

import "github.com/macropower/folio/pkg/keys"

type KeyBinds struct {
	Quit    *keys.KeyBind `json:"quit,omitempty"`
	Suspend *keys.KeyBind `json:"suspend,omitempty"`
	Help    *keys.KeyBind `json:"help,omitempty"`
	Copy    *keys.KeyBind `json:"copy,omitempty"`
	Goto    *keys.KeyBind `json:"goto,omitempty"`
	Wrap    *keys.KeyBind `json:"wrap,omitempty"`

	// Search.
	Find     *keys.KeyBind `json:"find,omitempty"`
	FindNext *keys.KeyBind `json:"findNext,omitempty"`

	// Navigation.
	Next  *keys.KeyBind `json:"next,omitempty"`
	Prev  *keys.KeyBind `json:"prev,omitempty"`
	First *keys.KeyBind `json:"first,omitempty"`
	Last  *keys.KeyBind `json:"last,omitempty"`

	// Rows per page.
	MoreRows  *keys.KeyBind `json:"moreRows,omitempty"`
	FewerRows *keys.KeyBind `json:"fewerRows,omitempty"`
}

func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Quit, keys.NewBind("quit", keys.New("q")))
	// Always ensure that ctrl+c is bound to quit.
	kb.Quit.AddKey(keys.New("ctrl+c", keys.WithAlias("⌃c"), keys.Hidden()))

	keys.SetDefaultBind(&kb.Suspend,
		keys.NewBind("suspend",
			keys.New("ctrl+z", keys.WithAlias("⌃z"), keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.Help,
		keys.NewBind("toggle help",
			keys.New("?"),
		))
	keys.SetDefaultBind(&kb.Copy,
		keys.NewBind("copy page",
			keys.New("y"),
		))
	keys.SetDefaultBind(&kb.Goto,
		keys.NewBind("go to page",
			keys.New(":"),
		))

	keys.SetDefaultBind(&kb.Wrap,
		keys.NewBind("toggle wrap",
			keys.New("w"),
		))
	keys.SetDefaultBind(&kb.Find,
		keys.NewBind("find",
			keys.New("/"),
		))
	keys.SetDefaultBind(&kb.FindNext,
		keys.NewBind("find next",
			keys.New("n"),
		))

	keys.SetDefaultBind(&kb.Next,
		keys.NewBind("next page",
			keys.New("right", keys.WithAlias("→")),
			keys.New("l"),
			keys.New("pgdown", keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.Prev,
		keys.NewBind("previous page",
			keys.New("left", keys.WithAlias("←")),
			keys.New("h"),
			keys.New("pgup", keys.Hidden()),
		))
	keys.SetDefaultBind(&kb.First,
		keys.NewBind("first page",
			keys.New("home"),
			keys.New("g"),
		))
	keys.SetDefaultBind(&kb.Last,
		keys.NewBind("last page",
			keys.New("end"),
			keys.New("G"),
		))

	keys.SetDefaultBind(&kb.MoreRows,
		keys.NewBind("more rows",
			keys.New("+"),
		))
	keys.SetDefaultBind(&kb.FewerRows,
		keys.NewBind("fewer rows",
			keys.New("-"),
		))
}

func (kb *KeyBinds) GetKeyBinds() []keys.KeyBind {
	return []keys.KeyBind{
		*kb.Quit,
		*kb.Suspend,
		*kb.Help,
		*kb.Copy,
		*kb.Goto,
		*kb.Wrap,
		*kb.Find,
		*kb.FindNext,
		*kb.Next,
		*kb.Prev,
		*kb.First,
		*kb.Last,
		*kb.MoreRows,
		*kb.FewerRows,
	}
}

func (kb *KeyBinds) renderer() *keys.KeyBindRenderer {
	kbr := &keys.KeyBindRenderer{}
	kbr.AddColumn(*kb.Next, *kb.Prev, *kb.First, *kb.Last)
	kbr.AddColumn(*kb.Goto, *kb.Find, *kb.FindNext, *kb.MoreRows, *kb.FewerRows)
	kbr.AddColumn(*kb.Wrap, *kb.Copy, *kb.Help, *kb.Quit)

	return kbr
}
