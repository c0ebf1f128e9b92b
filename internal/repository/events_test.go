package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gogame/internal/domain/game"
)

func TestEncodeEvent(t *testing.T) {
	x, y := 3, 4
	color := game.White

	tests := []struct {
		name  string
		event game.Event
		want  string
	}{
		{
			name: "move played",
			event: game.Event{
				Topic: game.GameTopic("g1"),
				Kind:  game.EventStateChanged,
				Payload: game.MovePlayedPayload{
					N:        7,
					ParentN:  5,
					MoveData: game.MoveData{Kind: game.KindStone, Color: &color, X: &x, Y: &y},
				},
			},
			want: `{"kind":"stateChanged","payload":{"n":7,"parentN":5,"moveData":{"kind":"stone","color":"white","x":3,"y":4}}}`,
		},
		{
			name: "agreement withdrawn",
			event: game.Event{
				Topic:   game.GameTopic("g1"),
				Kind:    game.EventAgreementChange,
				Payload: game.AgreementPayload{AgreesFor: "none"},
			},
			want: `{"kind":"okFor.change","payload":{"agreesFor":"none"}}`,
		},
		{
			name:  "list changed",
			event: game.Event{Topic: game.GamesTopic, Kind: game.EventGamesListChanged},
			want:  `{"kind":"games.change"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := EncodeEvent(tt.event)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(msg))
		})
	}
}
