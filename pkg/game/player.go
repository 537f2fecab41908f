package game

import (
	"regexp"

	petname "github.com/dustinkirkland/golang-petname"
)

const MaxPlayers = 2

type Player struct {
	Player int
	Name   string

	*Game
}

var nickRegexp = regexp.MustCompile(`[^a-zA-Z0-9_\-!@#$%^&*+=,./]+`)

func Nickname(nick string) string {
	nick = nickRegexp.ReplaceAllString(nick, "")
	if len(nick) > 10 {
		nick = nick[:10]
	} else if nick == "" {
		nick = "Anonymous"
	}

	return nick
}

// RandomNickname returns a generated name for players who did not pick one.
func RandomNickname() string {
	return Nickname(petname.Name())
}
