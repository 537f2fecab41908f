package main

import (
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rivo/tview"

	"github.com/qnkhuat/tetristerm/pkg/game"
)

func (c *Client) newTitle() *tview.List {
	title := tview.NewList().
		ShowSecondaryText(false).
		AddItem("Single player", "", '1', func() { c.startMatch(1) }).
		AddItem("Two players", "", '2', func() { c.startMatch(game.MaxPlayers) }).
		AddItem("Options", "", 'o', c.showOptions).
		AddItem("Quit", "", 'q', c.App.Stop)

	title.SetBorder(true).SetTitle(" tetristerm ")
	title.SetCurrentItem(c.cfg.Players - 1)

	return title
}

// showTitle stops the running match and returns to the main menu.
func (c *Client) showTitle() {
	if c.match != nil {
		c.match.Stop()
	}
	c.playing = false

	c.sound.Stop()

	c.Pages.HidePage(pageGameOver)
	c.Pages.SwitchToPage(pageTitle)
	c.title.SetCurrentItem(c.cfg.Players - 1)
	c.App.SetFocus(c.title)
}

func (c *Client) showOptions() {
	volume := percent(c.sound.Volume())
	musicVolume := percent(c.sound.MusicVolume())
	effectsVolume := percent(c.sound.EffectsVolume())
	mute := c.sound.Muted()
	track := c.sound.Track()

	names := make([]string, game.MaxPlayers)
	copy(names, c.cfg.Names)

	f := c.options
	f.Clear(true)

	if len(c.cfg.Tracks) > 0 {
		labels := make([]string, len(c.cfg.Tracks))
		for i, t := range c.cfg.Tracks {
			labels[i] = filepath.Base(t)
		}

		f.AddDropDown("Track", labels, track, func(_ string, i int) {
			track = i
		})
	}

	f.AddInputField("Volume", volume, 4, tview.InputFieldInteger, func(text string) {
		volume = text
	})
	f.AddInputField("Music", musicVolume, 4, tview.InputFieldInteger, func(text string) {
		musicVolume = text
	})
	f.AddInputField("Effects", effectsVolume, 4, tview.InputFieldInteger, func(text string) {
		effectsVolume = text
	})
	f.AddCheckbox("Mute", mute, func(checked bool) {
		mute = checked
	})

	for i := 0; i < game.MaxPlayers; i++ {
		i := i
		f.AddInputField("Player "+strconv.Itoa(i+1), names[i], 12, nil, func(text string) {
			names[i] = strings.TrimSpace(text)
		})
	}

	f.AddButton("Save", func() {
		if v, ok := parsePercent(volume); ok {
			c.cfg.Volume = v
			c.sound.SetVolume(v)
		}
		if v, ok := parsePercent(musicVolume); ok {
			c.cfg.MusicVolume = v
			c.sound.SetMusicVolume(v)
		}
		if v, ok := parsePercent(effectsVolume); ok {
			c.cfg.EffectsVolume = v
			c.sound.SetEffectsVolume(v)
		}

		c.cfg.Mute = mute
		c.sound.SetMute(mute)

		if len(c.cfg.Tracks) > 0 && track != c.sound.Track() {
			if err := c.sound.SetTrack(track); err != nil {
				log.Printf("Failed to switch track: %s", err)
			}
		}

		for i := range names {
			if names[i] != "" {
				names[i] = game.Nickname(names[i])
			}
		}
		c.cfg.Names = names

		c.showTitle()
	})
	f.AddButton("Back", c.showTitle)
	f.SetCancelFunc(c.showTitle)

	f.SetBorder(true).SetTitle(" Options ")

	c.Pages.SwitchToPage(pageOptions)
	c.App.SetFocus(f)
}

func percent(v float64) string {
	return strconv.Itoa(int(v*100 + 0.5))
}

// parsePercent reads a volume typed as 0-100, clamping out of range values.
func parsePercent(text string) (float64, bool) {
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}

	if v < 0 {
		v = 0
	} else if v > 100 {
		v = 100
	}

	return float64(v) / 100, true
}
