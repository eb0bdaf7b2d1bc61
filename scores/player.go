package scores

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmptyNick    = errors.New("scores: nick is required")
	ErrNickTooLong  = errors.New("scores: nick is too long")
	ErrInvalidEmail = errors.New("scores: invalid email")
)

// NewPlayer trims and validates the entry form. The email is optional.
func NewPlayer(nick, email string, maxNick int) (Player, error) {
	p := Player{Nick: strings.TrimSpace(nick), Email: strings.TrimSpace(email)}
	if p.Nick == "" {
		return Player{}, ErrEmptyNick
	}
	if maxNick > 0 && utf8.RuneCountInString(p.Nick) > maxNick {
		return Player{}, fmt.Errorf("%w: at most %d characters", ErrNickTooLong, maxNick)
	}
	if p.Email != "" {
		addr, err := mail.ParseAddress(p.Email)
		if err != nil || addr.Address != p.Email {
			return Player{}, ErrInvalidEmail
		}
	}
	return p, nil
}

type savedPlayer struct {
	Nick  string `json:"nick"`
	Email string `json:"email"`
}

// LoadPlayer reads the last player saved under key.
func LoadPlayer(store Store, key string) (Player, bool) {
	if store == nil {
		return Player{}, false
	}
	data, err := store.LoadItem(key)
	if err != nil {
		log.Printf("Warning: Could not load player: %v", err)
		return Player{}, false
	}
	if len(data) == 0 {
		return Player{}, false
	}
	var sp savedPlayer
	if err := json.Unmarshal(data, &sp); err != nil {
		log.Printf("Warning: Could not parse saved player: %v", err)
		return Player{}, false
	}
	if sp.Nick == "" {
		return Player{}, false
	}
	return Player{Nick: sp.Nick, Email: sp.Email}, true
}

// SavePlayer remembers p under key so the entry form can be prefilled.
func SavePlayer(store Store, key string, p Player) error {
	if store == nil {
		return nil
	}
	data, err := json.Marshal(savedPlayer{Nick: p.Nick, Email: p.Email})
	if err != nil {
		return fmt.Errorf("scores: encode player: %w", err)
	}
	if err := store.SaveItem(key, data); err != nil {
		log.Printf("Warning: Could not save player: %v", err)
		return fmt.Errorf("scores: save player: %w", err)
	}
	return nil
}

// TrimMessage prepares a leave-a-message text: surrounding space removed
// and cut to max runes. It reports false for an empty message.
func TrimMessage(msg string, max int) (string, bool) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return "", false
	}
	if max > 0 && utf8.RuneCountInString(msg) > max {
		msg = string([]rune(msg)[:max])
	}
	return msg, true
}
