package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fixture = "../../internal/nfe/testdata/nfeproc.xml"

func TestParseCmd_Invoice(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(zap.NewNop())
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"parse", fixture})

	require.NoError(t, cmd.Execute())

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, false, res["unreadable"])
	inv := res["invoice"].(map[string]interface{})
	assert.Equal(t, "35240512345678000195550010000012341000012345", inv["access_key"])
	assert.Nil(t, res["draft"])
}

func TestParseCmd_Draft(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(zap.NewNop())
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"parse", "--draft", fixture})

	require.NoError(t, cmd.Execute())

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	draft := res["draft"].(map[string]interface{})
	assert.Equal(t, "12345678000195", draft["supplier_tax_id"])
	assert.Nil(t, res["invoice"])
}

func TestParseDocument_Strict(t *testing.T) {
	var out bytes.Buffer

	err := parseDocument(&out, "junk.xml", "not xml at all", parseOptions{strict: true})
	assert.ErrorIs(t, err, errUnreadable)
	assert.Contains(t, out.String(), `"unreadable": true`)

	out.Reset()
	assert.NoError(t, parseDocument(&out, "junk.xml", "not xml at all", parseOptions{}))
}

func TestParseCmd_MissingFile(t *testing.T) {
	cmd := newRootCmd(zap.NewNop())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"parse", "does-not-exist.xml"})

	assert.Error(t, cmd.Execute())
}
