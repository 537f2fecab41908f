package main

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/tetristerm/pkg/event"
)

type Keybinding struct {
	k tcell.Key
	r rune
	m tcell.ModMask

	a event.GameAction
}

// Player one plays with WASD, player two with the arrow keys. A single
// player may use either set.
var keybindings = [][]*Keybinding{
	{
		{r: 'w', a: event.ActionRotate},
		{r: 'a', a: event.ActionMoveLeft},
		{r: 's', a: event.ActionSoftDrop},
		{r: 'd', a: event.ActionMoveRight},
	},
	{
		{k: tcell.KeyUp, a: event.ActionRotate},
		{k: tcell.KeyLeft, a: event.ActionMoveLeft},
		{k: tcell.KeyDown, a: event.ActionSoftDrop},
		{k: tcell.KeyRight, a: event.ActionMoveRight},
	},
}

func (b *Keybinding) matches(k tcell.Key, r rune, m tcell.ModMask) bool {
	if b.k != 0 {
		return b.k == k && b.m == m
	}

	return k == tcell.KeyRune && b.r == unicode.ToLower(r) && b.m == m&^tcell.ModShift
}

// actionFor resolves a key press to the player it belongs to and the action
// it performs. ok is false for keys that are not bound.
func actionFor(players int, k tcell.Key, r rune, m tcell.ModMask) (player int, a event.GameAction, ok bool) {
	for set, bindings := range keybindings {
		for _, b := range bindings {
			if !b.matches(k, r, m) {
				continue
			}

			if players == 1 {
				return 0, b.a, true
			}
			if set >= players {
				return 0, event.ActionUnknown, false
			}

			return set, b.a, true
		}
	}

	return 0, event.ActionUnknown, false
}

func (c *Client) handleKeypress(ev *tcell.EventKey) *tcell.EventKey {
	if !c.playing {
		return ev
	}
	if name, _ := c.Pages.GetFrontPage(); name != pageGame {
		return ev
	}

	k := ev.Key()
	switch k {
	case tcell.KeyEscape:
		c.showTitle()
		return nil
	case tcell.KeyCtrlC:
		c.App.Stop()
		return nil
	}

	player, a, ok := actionFor(len(c.match.Players), k, ev.Rune(), ev.Modifiers())
	if !ok {
		return ev
	}

	c.match.ProcessAction(player, a)
	return nil
}
