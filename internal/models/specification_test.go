package models

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecificationKeepsDocumentOrder(t *testing.T) {
	var s Specification
	require.NoError(t, json.Unmarshal([]byte(`{"socket":"AM5","cores":8,"smt":true,"tdp":null,"ports":["usb","hdmi"]}`), &s))

	keys := make([]string, 0, len(s))
	for _, e := range s {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"socket", "cores", "smt", "tdp", "ports"}, keys)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"socket":"AM5","cores":8,"smt":true,"tdp":null,"ports":["usb","hdmi"]}`, string(out))
	assert.Equal(t, `{"socket":"AM5","cores":8,"smt":true,"tdp":null,"ports":["usb","hdmi"]}`, string(out))
}

func TestSpecValueKinds(t *testing.T) {
	var s Specification
	require.NoError(t, json.Unmarshal([]byte(`{"a":"8","b":8,"c":false}`), &s))

	a, _ := s.Get("a")
	b, _ := s.Get("b")
	c, _ := s.Get("c")

	assert.Equal(t, SpecString, a.Kind)
	assert.Equal(t, SpecNumber, b.Kind)
	assert.Equal(t, SpecBool, c.Kind)

	assert.True(t, a.EqualsString("8"))
	assert.False(t, a.EqualsInt(8))
	assert.True(t, b.EqualsInt(8))
	assert.False(t, b.EqualsString("8"))
	assert.Equal(t, "false", c.String())
}

func TestSpecificationRepeatedKeyReplaces(t *testing.T) {
	var s Specification
	require.NoError(t, json.Unmarshal([]byte(`{"ram":"8GB","ram":"16GB"}`), &s))
	require.Len(t, s, 1)
	v, ok := s.Get("ram")
	require.True(t, ok)
	assert.Equal(t, "16GB", v.String())
}

func TestSpecificationNullAndInvalid(t *testing.T) {
	var s Specification
	require.NoError(t, json.Unmarshal([]byte(`null`), &s))
	assert.Nil(t, s)

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &s))

	out, err := json.Marshal(Specification(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestUserIsEmployee(t *testing.T) {
	assert.False(t, (*User)(nil).IsEmployee())
	assert.True(t, (&User{IsActive: true, IsStaff: true}).IsEmployee())
	assert.True(t, (&User{IsActive: true, Groups: []Group{{Name: EmployeeGroup}}}).IsEmployee())
	assert.False(t, (&User{IsActive: true, Groups: []Group{{Name: "Customers"}}}).IsEmployee())
	assert.False(t, (&User{IsActive: false, IsStaff: true}).IsEmployee())
}

func TestSpecValueCanonicalNumbers(t *testing.T) {
	var s Specification
	require.NoError(t, json.Unmarshal([]byte(`{"clock":1.50,"tdp":1e2,"cores":8,"serial":99999999999999999999}`), &s))

	cases := map[string]string{
		"clock":  "1.5",
		"tdp":    "100.0",
		"cores":  "8",
		"serial": "99999999999999999999",
	}
	for key, want := range cases {
		v, ok := s.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want, v.String(), key)
	}

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"clock":1.50,"tdp":1e2,"cores":8,"serial":99999999999999999999}`, string(out))
}

func TestSpecValueEqualsIntegerBeyondInt64(t *testing.T) {
	var s Specification
	require.NoError(t, json.Unmarshal([]byte(`{"serial":99999999999999999999,"tdp":1e2}`), &s))

	serialNo, _ := new(big.Int).SetString("99999999999999999999", 10)
	serial, _ := s.Get("serial")
	assert.True(t, serial.EqualsInteger(serialNo))
	assert.False(t, serial.EqualsInteger(new(big.Int).Add(serialNo, big.NewInt(1))))

	tdp, _ := s.Get("tdp")
	assert.True(t, tdp.EqualsInt(100))
}
