package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gallop/internal/ui/theme"
)

// MascotVariant selects which horse to draw.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota // no tournament
	MascotRacing                        // tournament under way
	MascotChampion                      // tournament finished
)

const mascotIdle = `    ,  ,
   / \/ \____
  (  o  ____/
   \   /
   /   \_____
  /  __   __ \
  |_|  |_|  |_|`

const mascotRacing = `      ,~~.
  ___/  o \__   ~
 /  __     _/  ~~
/__/ /\___/\    ~
    /_/   \_\`

const mascotChampion = `     ★  ,  ,  ★
       / \/ \____
      (  ^  ____/
  ♛    \   /
       /   \_____
      /  __   __ \
      |_|  |_|  |_|`

// RenderMascot returns the horse art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotRacing:
		art, fg = mascotRacing, theme.Accent
	case MascotChampion:
		art, fg = mascotChampion, theme.Gold
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
