package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullable struct {
	valid bool
}

func (n nullable) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return []byte("0.25"), nil
}

type payload struct {
	Name   string    `json:"name"`
	K      int       `json:"k"`
	Values []float64 `json:"values"`
	A      nullable  `json:"a"`
	B      nullable  `json:"b"`
}

func TestCodecs(t *testing.T) {
	in := payload{Name: "iris", K: 3, Values: []float64{0.5, -1}, A: nullable{valid: true}}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(in)
			require.NoError(t, err)
			assert.JSONEq(t, `{"name":"iris","k":3,"values":[0.5,-1],"a":0.25,"b":null}`, string(data))

			var out struct {
				Name   string    `json:"name"`
				K      int       `json:"k"`
				Values []float64 `json:"values"`
			}
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in.Name, out.Name)
			assert.Equal(t, in.K, out.K)
			assert.Equal(t, in.Values, out.Values)
		})
	}
}

func TestByName(t *testing.T) {
	c, err := ByName("json")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	c, err = ByName("")
	require.NoError(t, err)
	assert.Equal(t, Default.Name(), c.Name())

	_, err = ByName("msgpack")
	assert.Error(t, err)
}
