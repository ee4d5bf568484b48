package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGrammarFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Test.g4")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func Test_Run_buildsBothArtifacts(t *testing.T) {
	path := writeGrammarFile(t, `
grammar Test;
stat : 'swap' first=ID 'and' second=ID ;
ID : [a-zA-Z]+ ;
`)

	res, err := Run(Options{
		GrammarPath:             path,
		BuildAstModel:           true,
		BuildSyntaxHighlighting: true,
		Language:                "test",
	})
	require.NoError(t, err)
	assert.False(t, res.Diags.HasErrors())
	require.NotNil(t, res.AstModel)
	require.NotNil(t, res.SyntaxHighlight)
	assert.NotEmpty(t, res.AstModel.Classes)
}

func Test_Run_onlyRequestedArtifactsAreBuilt(t *testing.T) {
	path := writeGrammarFile(t, `
grammar Test;
stat : ID ;
ID : [a-zA-Z]+ ;
`)

	res, err := Run(Options{GrammarPath: path})
	require.NoError(t, err)
	assert.Nil(t, res.AstModel)
	assert.Nil(t, res.SyntaxHighlight)
}

func Test_Run_lexerOnlyGrammarCannotBuildAstModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "TestLexer.g4")
	require.NoError(t, os.WriteFile(path, []byte(`
lexer grammar TestLexer;
ID : [a-z]+ ;
`), 0644))

	res, err := Run(Options{GrammarPath: path, BuildAstModel: true})
	require.NoError(t, err)
	assert.Nil(t, res.AstModel)
	assert.True(t, res.Diags.HasErrors())
}

func Test_Run_missingFileReturnsError(t *testing.T) {
	_, err := Run(Options{GrammarPath: filepath.Join(t.TempDir(), "missing.g4")})
	assert.Error(t, err)
}

func Test_SaveAndLoadDiagnostics_roundTrips(t *testing.T) {
	path := writeGrammarFile(t, `grammar Test; stat : ) ;`)
	res, err := Run(Options{GrammarPath: path})
	require.NoError(t, err)
	require.True(t, res.Diags.HasErrors())

	sidecar := filepath.Join(t.TempDir(), "diags.bin")
	require.NoError(t, SaveDiagnostics(res.Diags, sidecar))

	restored, err := LoadDiagnostics(sidecar)
	require.NoError(t, err)
	assert.Equal(t, res.Diags.RunID, restored.RunID)
	assert.Equal(t, res.Diags.Len(), restored.Len())
}
