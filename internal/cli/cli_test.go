package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docentia/internal/document"
	"github.com/dgallion1/docentia/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readDOCXFile(t *testing.T, path string) []export.Paragraph {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	paras, err := export.ReadDOCX(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return paras
}

func TestExportCommand_FrontMatterTitle(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "unidad.md", "---\ntitle: Unidad 3\n---\n# Objetivos\n1. Leer\n")

	out, _, err := runCLI(t, "", "export", src)
	require.NoError(t, err)

	want := filepath.Join(dir, "Unidad_3.docx")
	assert.Equal(t, "Wrote "+want+"\n", out)

	paras := readDOCXFile(t, want)
	require.Len(t, paras, 4)
	assert.Equal(t, "Unidad 3", paras[0].Text)
	assert.Equal(t, "Objetivos", paras[1].Text)
	assert.Equal(t, "1. Leer", paras[2].Text)
	assert.Equal(t, document.FooterText, paras[3].Text)
}

func TestExportCommand_Flags(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "notas.md", "Texto con **negrita**\n")
	dst := filepath.Join(dir, "salida.docx")

	_, _, err := runCLI(t, "", "export", src, "--title", "Mis notas", "--out", dst)
	require.NoError(t, err)

	paras := readDOCXFile(t, dst)
	assert.Equal(t, "Mis notas", paras[0].Text)
	assert.Equal(t, "Texto con negrita", paras[1].Text)
}

func TestExportCommand_MissingFile(t *testing.T) {
	_, _, err := runCLI(t, "", "export", filepath.Join(t.TempDir(), "nope.md"))
	assert.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.md", "## Sección\nHola\n")
	dst := filepath.Join(dir, "a.docx")
	_, _, err := runCLI(t, "", "export", src, "-t", "Título", "-o", dst)
	require.NoError(t, err)

	out, _, err := runCLI(t, "", "inspect", dst)
	require.NoError(t, err)
	assert.Equal(t, "Título\nSección\nHola\n"+document.FooterText+"\n", out)

	out, _, err = runCLI(t, "", "inspect", "-v", dst)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "[bold,center,sz=56]\tTítulo", lines[0])
	assert.Equal(t, "[bold,sz=28]\tSección", lines[1])
	assert.Equal(t, "-\tHola", lines[2])
	assert.Equal(t, "[center,sz=18,color=808080]\t"+document.FooterText, lines[3])
}

func TestConfigCommand_MasksSecrets(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-123456")
	t.Setenv("WORKER_COUNT", "7")

	out, _, err := runCLI(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, `anthropic_api_key = "*********3456"`)
	assert.NotContains(t, out, "sk-ant-123456")
	assert.Contains(t, out, `worker_count = "7"`)
	assert.Contains(t, out, "# Active provider: claude, openai or gemini")
	assert.NotContains(t, out, "# invalid")
}

func TestGenerateCommand(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "# Actividad\n- Debate"}},
		})
	}))
	defer upstream.Close()
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_BASE_URL", upstream.URL)

	dir := t.TempDir()
	reqFile := writeFile(t, dir, "req.json",
		`{"nivel":"ESO","curso":"2º","asignatura":"Historia","situacion":"Guardia","duracion":"50 minutos"}`)
	dst := filepath.Join(dir, "out.docx")

	out, _, err := runCLI(t, "", "generate", "emergencia", reqFile, "--docx", dst)
	require.NoError(t, err)
	assert.Equal(t, "# Actividad\n- Debate\n", out)

	paras := readDOCXFile(t, dst)
	assert.Equal(t, "Actividad", paras[1].Text)
	assert.Equal(t, "• Debate", paras[2].Text)
}

func TestGenerateCommand_Stdin(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "OK"}},
		})
	}))
	defer upstream.Close()
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_BASE_URL", upstream.URL)

	body := `{"nivel":"Primaria","curso":"3º","asignatura":"Matemáticas","tema":"Fracciones","tipo_actividad":"juegos"}`
	out, _, err := runCLI(t, body, "generate", "ideas", "-")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)
}

func TestGenerateCommand_InvalidRequest(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	_, _, err := runCLI(t, `{"nivel":"ESO"}`, "generate", "emergencia", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request")
	assert.Contains(t, err.Error(), "situacion: es obligatorio")
}

func TestGenerateCommand_UnknownKind(t *testing.T) {
	_, _, err := runCLI(t, "{}", "generate", "poema", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poema")
}
