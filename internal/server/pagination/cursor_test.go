package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		c    Cursor
	}{
		{name: "with last id", c: After(uuid.New())},
		{name: "without last id", c: Cursor{}},
		{name: "nil uuid", c: After(uuid.Nil)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := Encode(tc.c)
			require.NotEmpty(t, token)

			got, err := Decode(token)
			require.NoError(t, err)
			assert.Equal(t, tc.c, got)
		})
	}
}

func TestEncode_IsURLSafe(t *testing.T) {
	for i := 0; i < 200; i++ {
		token := Encode(After(uuid.New()))
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
	}
}

func TestEncode_HidesJSONInsideBase64(t *testing.T) {
	id := uuid.MustParse("6f1f6c1a-7d0a-4b7e-9a35-2b9b6c0c8e11")

	raw, err := base64.URLEncoding.DecodeString(Encode(After(id)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_id":"6f1f6c1a-7d0a-4b7e-9a35-2b9b6c0c8e11"}`, string(raw))

	raw, err = base64.URLEncoding.DecodeString(Encode(Cursor{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_id":null}`, string(raw))
}

func TestDecode_InvalidTokens(t *testing.T) {
	notJSON := base64.URLEncoding.EncodeToString([]byte("not json"))
	badID := base64.URLEncoding.EncodeToString([]byte(`{"last_id":"nope"}`))
	wrongType := base64.URLEncoding.EncodeToString([]byte(`{"last_id":42}`))
	stdAlphabet := base64.StdEncoding.EncodeToString([]byte{0xfb, 0xff, 0xfe})

	b64 := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }
	const id = "6f1f6c1a-7d0a-4b7e-9a35-2b9b6c0c8e11"
	nullPayload := b64(`null`)
	upperKey := b64(`{"LAST_ID":"` + id + `"}`)
	extraKey := b64(`{"last_id":null,"x":1}`)
	missingKey := b64(`{}`)
	arrayPayload := b64(`["` + id + `"]`)
	spaced := b64(`{ "last_id" : "` + id + `" }`)
	upperID := b64(`{"last_id":"6F1F6C1A-7D0A-4B7E-9A35-2B9B6C0C8E11"}`)
	unpadded := base64.RawURLEncoding.EncodeToString([]byte(`{"last_id":"` + id + `"}`))

	tokens := []string{
		"", "not-base64@@", "%%%", notJSON, badID, wrongType, stdAlphabet, "e30",
		nullPayload, upperKey, extraKey, missingKey, arrayPayload, spaced, upperID, unpadded,
	}
	for _, token := range tokens {
		t.Run(token, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, err := Decode(token)
				assert.True(t, errors.Is(err, ErrInvalidCursor), "token %q: %v", token, err)
			})
		})
	}
}

func TestCursor_JSONAsToken(t *testing.T) {
	c := After(uuid.New())

	b, err := json.Marshal(struct {
		Cursor *Cursor `json:"cursor"`
	}{&c})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cursor":"`+Encode(c)+`"}`, string(b))

	var back struct {
		Cursor *Cursor `json:"cursor"`
	}
	require.NoError(t, json.Unmarshal(b, &back))
	require.NotNil(t, back.Cursor)
	assert.Equal(t, c, *back.Cursor)
}

func TestCursor_UnmarshalTextRejectsGarbage(t *testing.T) {
	var c Cursor
	err := c.UnmarshalText([]byte("@@@"))
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestDecode_AcceptsEveryEncodedToken(t *testing.T) {
	for _, c := range []Cursor{{}, After(uuid.Nil), After(uuid.New())} {
		got, err := Decode(Encode(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}
