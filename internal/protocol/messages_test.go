package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeChatLine(t *testing.T) {
	in := ChatLinePayload{
		ConnID:    "conn-42",
		Username:  "hannibal",
		Text:      "attack at dawn",
		Timestamp: 1770000000,
	}

	data, err := EncodeMessage(MsgChatLine, in)
	require.NoError(t, err)

	msg, err := DecodeMessage(data)
	require.NoError(t, err)
	require.Equal(t, MsgChatLine, msg.Type)

	var out ChatLinePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &out))
	require.Equal(t, in, out)
}

func TestEncodeDecodeJoined(t *testing.T) {
	in := JoinedPayload{
		ConnID:  "conn-1",
		RoomID:  "lobby",
		Members: []string{"ada", "bel"},
		Recent: []ChatLinePayload{
			{ConnID: "conn-2", Username: "bel", Text: "hello", Timestamp: 1},
			{ConnID: "conn-1", Username: "ada", Text: "hi", Timestamp: 2},
		},
	}

	data, err := EncodeMessage(MsgJoined, in)
	require.NoError(t, err)

	msg, err := DecodeMessage(data)
	require.NoError(t, err)
	require.Equal(t, MsgJoined, msg.Type)

	var out JoinedPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &out))
	require.Equal(t, in, out)
	require.Len(t, out.Recent, 2)
}

func TestEncodeNilPayload(t *testing.T) {
	data, err := EncodeMessage(MsgLeave, nil)
	require.NoError(t, err)

	msg, err := DecodeMessage(data)
	require.NoError(t, err)
	require.Equal(t, MsgLeave, msg.Type)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := DecodeMessage([]byte("{not json"))
	require.Error(t, err)
}
