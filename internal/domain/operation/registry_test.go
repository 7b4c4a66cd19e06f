//go:build unit
// +build unit

package operation

import (
	"testing"

	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/enums"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_FunctionListOrder(t *testing.T) {
	list := List()
	require.Len(t, list, Count)
	assert.Equal(t, 68, Count)

	seen := map[string]bool{}
	for i, d := range list {
		assert.Equal(t, ID(i), d.ID, d.Name)
		assert.False(t, seen[d.Name], "duplicate %s", d.Name)
		seen[d.Name] = true
	}

	assert.Equal(t, "C_Initialize", list[0].Name)
	assert.Equal(t, "C_GetFunctionList", list[3].Name)
	assert.Equal(t, "C_WaitForSlotEvent", list[Count-1].Name)
}

func TestList_ReturnsCopy(t *testing.T) {
	list := List()
	list[0].Name = "changed"
	assert.Equal(t, "C_Initialize", MustLookup(Initialize).Name)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantID   ID
		wantOK   bool
		wantArgs int
	}{
		{"full name", "C_Sign", Sign, true, 4},
		{"short name", "GenerateKeyPair", GenerateKeyPair, true, 6},
		{"no params", "C_Finalize", Finalize, true, 0},
		{"unknown", "C_Frobnicate", 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Describe(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantID, d.ID)
			assert.Len(t, d.Params, tt.wantArgs)
		})
	}
}

func TestLookup_OutOfRange(t *testing.T) {
	_, ok := Lookup(-1)
	assert.False(t, ok)
	_, ok = Lookup(ID(Count))
	assert.False(t, ok)
	assert.Equal(t, "C_Unknown(99)", ID(99).String())
	assert.Panics(t, func() { MustLookup(ID(Count)) })
}

func TestDescriptor_Directions(t *testing.T) {
	d := MustLookup(Encrypt)

	inputs := d.Inputs()
	require.Len(t, inputs, 3)
	assert.Equal(t, "hSession", inputs[0].Name)
	assert.Equal(t, "pData", inputs[1].Name)
	assert.Equal(t, "pulEncryptedDataLen", inputs[2].Name)

	outputs := d.Outputs()
	require.Len(t, outputs, 2)
	assert.Equal(t, "pEncryptedData", outputs[0].Name)
	assert.Equal(t, Buffer, outputs[0].Kind)
	assert.Equal(t, InOut, outputs[1].Dir)
}

func TestDescriptor_EnumParams(t *testing.T) {
	login := MustLookup(Login)
	assert.Equal(t, Enum, login.Params[1].Kind)
	assert.Equal(t, enums.UserType, login.Params[1].Enum)

	mechs := MustLookup(GetMechanismList)
	assert.Equal(t, HandleArray, mechs.Params[1].Kind)
	assert.Equal(t, enums.Mechanism, mechs.Params[1].Enum)

	attrs := MustLookup(GetAttributeValue)
	assert.Equal(t, InOut, attrs.Params[2].Dir)
	assert.Equal(t, Template, attrs.Params[2].Kind)
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "in", In.String())
	assert.Equal(t, "out", Out.String())
	assert.Equal(t, "inout", InOut.String())
	assert.True(t, InOut.Reads())
	assert.True(t, InOut.Writes())
	assert.False(t, In.Writes())
	assert.False(t, Out.Reads())
	assert.Equal(t, "attribute-template", Template.String())
}
