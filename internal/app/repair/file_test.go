package repair

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/medcatalog/internal/domain"
	"github.com/heartmarshall/medcatalog/internal/translate"
)

const sheet = `referenceFournisseur,constructeur,nom_fr,nom_en,description_fr,description_en
R1,Acme,Forceps with teeth,Forceps with teeth,,
R2,Acme,Pinces Kelly,Kelly forceps,Pinces courbées,Curved forceps
R3,Acme,Ciseaux with pointe,Scissors with tip,Description with the text,Description with the text
R4,Acme
R5,Acme,Spéculum,Speculum,"Spéculum, modèle suisse","Speculum, swiss model"
`

func writeSheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/data/products_fixed_translations.csv", OutputPath("/data/products.csv"))
	assert.Equal(t, "export_fixed_translations", OutputPath("export"))
	assert.Equal(t, "a.b/c_fixed_translations.tsv", OutputPath("a.b/c.tsv"))
}

func TestFixFile(t *testing.T) {
	t.Parallel()

	path := writeSheet(t, sheet)

	res, err := FixFile(context.Background(), path, ',', prefixTranslator(), discardLogger())
	require.NoError(t, err)

	assert.Equal(t, FixResult{
		Total:      5,
		Fixed:      2,
		Unchanged:  2,
		Malformed:  1,
		OutputPath: OutputPath(path),
	}, res)

	out, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "referenceFournisseur,constructeur,nom_fr,nom_en,description_fr,description_en", lines[0])
	assert.Equal(t, "R1,Acme,FR:Forceps with teeth,Forceps with teeth,,", lines[1])
	assert.Equal(t, "R2,Acme,Pinces Kelly,Kelly forceps,Pinces courbées,Curved forceps", lines[2])
	assert.Equal(t, "R3,Acme,FR:Scissors with tip,Scissors with tip,FR:Description with the text,Description with the text", lines[3])
	assert.Equal(t, "R4,Acme", lines[4])
	assert.Equal(t, `R5,Acme,Spéculum,Speculum,"Spéculum, modèle suisse","Speculum, swiss model"`, lines[5])

	original, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sheet, string(original), "input must not be overwritten")
}

func TestFixFile_HeuristicRewriter(t *testing.T) {
	t.Parallel()

	path := writeSheet(t, "referenceFournisseur,constructeur,nom_fr,nom_en\nM1,Acme,Mosquito forceps,Mosquito Forceps\n")

	res, err := FixFile(context.Background(), path, ',', translate.NewRewriter(), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Fixed)

	out, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), "M1,Acme,Pinces Moustique,Mosquito Forceps\n")
}

func TestFixFile_TranslatorFailureKeepsRow(t *testing.T) {
	t.Parallel()

	path := writeSheet(t, sheet)

	res, err := FixFile(context.Background(), path, ',', failingTranslator(), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Fixed)
	assert.Equal(t, 4, res.Unchanged)

	out, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, sheet, string(out))
}

func TestFixFile_MissingNameColumns(t *testing.T) {
	t.Parallel()

	path := writeSheet(t, "referenceFournisseur,constructeur,nom_fr\nR1,Acme,Pinces\n")

	_, err := FixFile(context.Background(), path, ',', prefixTranslator(), discardLogger())
	assert.True(t, errors.Is(err, domain.ErrFatalConfig), "got %v", err)
}

func TestFixFile_MissingInput(t *testing.T) {
	t.Parallel()

	_, err := FixFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), ',', prefixTranslator(), discardLogger())
	assert.True(t, errors.Is(err, domain.ErrFatalConfig), "got %v", err)
}

func TestFixFile_Cancelled(t *testing.T) {
	t.Parallel()

	path := writeSheet(t, sheet)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FixFile(ctx, path, ',', prefixTranslator(), discardLogger())
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, OutputPath(path))
}
