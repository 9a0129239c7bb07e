package catalog

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault_PayloadShape(t *testing.T) {
	t.Parallel()
	c := Default()

	assert.Len(t, c.Modules, 6)
	assert.Len(t, c.Questions, 15)
	require.NoError(t, c.Validate())

	gps, ok := c.ByID("q_gps_trigger")
	require.True(t, ok)
	assert.Equal(t, GpsButton, gps.Type)

	state, ok := c.ByID("q3_state")
	require.True(t, ok)
	assert.True(t, state.HideIfGPS)
	assert.Equal(t, Dropdown, state.Type)
}

func TestValidate_RejectsDuplicateIDs(t *testing.T) {
	t.Parallel()
	c := &Catalog{
		Modules: []string{"M"},
		Questions: []Question{
			{ID: "q1", ModuleIndex: 0, Label: "a", Type: Text},
			{ID: "q1", ModuleIndex: 0, Label: "b", Type: Text},
		},
	}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestValidate_RequiresOptions(t *testing.T) {
	t.Parallel()
	for _, ft := range []FieldType{Dropdown, Radio} {
		c := &Catalog{
			Modules:   []string{"M"},
			Questions: []Question{{ID: "q1", ModuleIndex: 0, Label: "a", Type: ft}},
		}
		assert.Error(t, c.Validate(), "%s without options must fail", ft)
	}
}

func TestValidate_ModuleIndexRange(t *testing.T) {
	t.Parallel()
	c := &Catalog{
		Modules:   []string{"M"},
		Questions: []Question{{ID: "q1", ModuleIndex: 3, Label: "a", Type: Text}},
	}
	assert.Error(t, c.Validate())
}

func TestFieldType_ClosedUnion(t *testing.T) {
	t.Parallel()
	var q Question
	err := yaml.Unmarshal([]byte("id: q1\nmodule: 0\nlabel: x\ntype: checkbox\n"), &q)
	require.Error(t, err, "unknown type tag must be rejected at parse time")
	assert.True(t, strings.Contains(err.Error(), "checkbox"))
}

func TestFieldType_YAMLRoundTrip(t *testing.T) {
	t.Parallel()
	in := []Question{
		{ID: "a", ModuleIndex: 0, Label: "t", Type: Text, Placeholder: "p"},
		{ID: "b", ModuleIndex: 1, Label: "d", Type: Dropdown, Options: []string{"x", "y"}},
		{ID: "c", ModuleIndex: 1, Label: "g", Type: GpsButton, Info: "i", HideIfGPS: false},
	}

	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	var out []Question
	require.NoError(t, yaml.Unmarshal(data, &out))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestQuestionsForModule(t *testing.T) {
	t.Parallel()
	c := Default()

	m0 := c.QuestionsForModule(0)
	require.Len(t, m0, 3)
	assert.Equal(t, "q1_name", m0[0].ID)

	for _, q := range c.QuestionsForModule(5) {
		assert.Equal(t, 5, q.ModuleIndex)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()
	_, err := Load([]byte("modules: [\n"))
	assert.Error(t, err)
}
