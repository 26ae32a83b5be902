package session

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestDecodeEvent(t *testing.T) {
	tests := map[string]struct {
		frame  string
		exp    Event
		expErr string
	}{
		"join": {
			frame: `{"type":"joinGame","data":"Pam"}`,
			exp:   Event{Type: EventJoinGame, ConnId: "c1", Arg: "Pam"},
		},
		"move": {
			frame: `{"type":"moveToRoom","data":"breakroom"}`,
			exp:   Event{Type: EventMoveToRoom, ConnId: "c1", Arg: "breakroom"},
		},
		"command": {
			frame: `{"type":"command","data":"open first-aid kit"}`,
			exp:   Event{Type: EventCommand, ConnId: "c1", Arg: "open first-aid kit"},
		},
		"missing data": {
			frame: `{"type":"command"}`,
			exp:   Event{Type: EventCommand, ConnId: "c1"},
		},
		"not json": {
			frame:  `hello`,
			expErr: "decoding frame",
		},
		"disconnect is not a client frame": {
			frame:  `{"type":"disconnect"}`,
			expErr: `unknown frame type "disconnect"`,
		},
		"unknown type": {
			frame:  `{"type":"attack","data":"Jim"}`,
			expErr: `unknown frame type "attack"`,
		},
		"non string data": {
			frame:  `{"type":"joinGame","data":{"name":"Pam"}}`,
			expErr: "decoding joinGame data",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ev, err := DecodeEvent("c1", []byte(tt.frame))
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "event", ev, tt.exp)
		})
	}
}

func TestEncodeFrame(t *testing.T) {
	b, err := EncodeFrame(MessageCommandResult, "Health: 100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "frame", string(b), `{"type":"commandResult","data":"Health: 100"}`)
}
