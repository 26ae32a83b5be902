package display

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-monotony/internal/game"
)

const stateTemplate = `{{ .Room.Name }}: {{ .Room.Description }}
{{- with .Others }}
Also here: {{ join ", " . }}
{{- end }}
Rooms: {{ .RoomIds | join ", " }}`

// stateView is what the state template sees.
type stateView struct {
	Room    game.RoomView
	Others  []string
	RoomIds []string
}

// RenderState describes the snapshot from the point of view of connId: the
// room it is in, who else is there, and the ids it can move to.
func RenderState(s game.Snapshot, connId string) (string, error) {
	p, ok := s.Players[connId]
	if !ok {
		return "", fmt.Errorf("player %q not in snapshot", connId)
	}
	room, ok := s.Rooms[p.Room]
	if !ok {
		return "", fmt.Errorf("room %q not in snapshot", p.Room)
	}

	v := stateView{Room: room}
	for _, id := range room.Players {
		if id == connId {
			continue
		}
		if o, ok := s.Players[id]; ok {
			v.Others = append(v.Others, o.Name)
		}
	}
	for id := range s.Rooms {
		v.RoomIds = append(v.RoomIds, id)
	}
	slices.Sort(v.RoomIds)

	out, err := ExpandTemplate(stateTemplate, v)
	if err != nil {
		return "", err
	}
	return Wrap(out), nil
}
