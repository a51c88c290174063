package translate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriter_Rewrite(t *testing.T) {
	t.Parallel()

	r := NewRewriter()

	tests := []struct {
		in   string
		want string
	}{
		{"Scissors with replacement tip", "Ciseaux avec pointe de remplacement"},
		{"Mosquito Forceps", "Pinces Moustique"},
		{"Speculum , swiss model", "Spéculum, modèle suisse"},
		{"Serrated jaws", "Mâchoires dentelées"},
		{"10inches", "10 pouces"},
		{"3 inch", "3 pouce"},
		{"5-mm blade", "5 mm lame"},
		{"Knife.sharp", "Couteau. aigu(e)"},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, r.Rewrite(tt.in))
		})
	}
}

func TestRules_Individually(t *testing.T) {
	t.Parallel()

	// Inputs are what the rule sees after the terminology pass.
	tests := []struct {
		in   string
		want string
	}{
		{"tying pinces", "Pinces tying"},
		{"vannas ciseaux", "Ciseaux vannas"},
		{"12-mm", "12 mm"},
		{"4inches", "4 pouces"},
		{"swiss modèle", "modèle suisse"},
		{"mosquito", "Moustique"},
		{"cross-action", "à croisement"},
		{"dentelé(e) jaws", "mâchoires dentelées"},
		{"concave jaws", "mâchoires concaves"},
		{"remplacement tip", "pointe de remplacement"},
		{"graft insertion", "insertion de greffe"},
		{"distal control", "contrôle distal"},
		{"ultra-thin tip", "pointe ultra-fine"},
	}
	require.Len(t, rules, len(tests))

	for i, tt := range tests {
		got := rules[i].Pattern.ReplaceAllString(tt.in, rules[i].Replacement)
		assert.Equal(t, tt.want, got, "rule %d (%s)", i+1, rules[i].Note)
	}
}

func TestRules_DependOnDictionary(t *testing.T) {
	t.Parallel()

	replacementTip := rules[9]
	assert.False(t, replacementTip.Pattern.MatchString("replacement tip"))
	assert.Equal(t, "Pointe de remplacement", NewRewriter().Rewrite("Replacement tip"))
}

func TestRewriter_ToFrench(t *testing.T) {
	t.Parallel()

	var tr Translator = NewRewriter()
	got, err := tr.ToFrench(context.Background(), "Curved scissors")
	require.NoError(t, err)
	assert.Equal(t, "Courbé(e) ciseaux", got)
}

func TestNeedsImprovement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fr, en string
		want   bool
	}{
		{"missing french", "", "Forceps", true},
		{"missing english", "Pinces", " ", true},
		{"identical", "Tying Forceps", "tying  forceps", true},
		{"english leftovers", "Pinces with tip", "Forceps with tip", true},
		{"translated", "Pinces droites", "Straight forceps", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NeedsImprovement(tt.fr, tt.en))
		})
	}
}
