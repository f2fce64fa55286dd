package prompts

import (
	"strings"
	"testing"

	"github.com/dgallion1/docentia/internal/chunker"
	"github.com/dgallion1/docentia/internal/requests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryKindHasTemplate(t *testing.T) {
	for _, kind := range requests.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			system, err := System(kind)
			require.NoError(t, err)
			assert.NotEmpty(t, system)
			assert.Contains(t, byKind, kind)
		})
	}
	_, err := System("poema")
	assert.Error(t, err)
}

func TestForUnidad(t *testing.T) {
	p := For(&requests.Unidad{Nivel: "Primaria", Curso: "3º", Asignatura: "Ciencias", Tema: "Los seres vivos"})

	assert.Equal(t, requests.KindUnidad, p.Kind)
	assert.Equal(t, 4096, p.MaxTokens)
	assert.Equal(t, 0.7, p.Temperature)
	assert.Equal(t, "Unidad didáctica generada correctamente", p.Message)
	assert.Equal(t, "Unidad Didáctica - Los seres vivos", p.Title)
	assert.Contains(t, p.System, "Decreto 107/2022")
	assert.True(t, strings.HasPrefix(p.User, "Genera una Unidad Didáctica con estos datos:\n- **Nivel:** Primaria\n"))
	assert.Contains(t, p.User, "- **Características del grupo:** Grupo estándar")
	assert.Contains(t, p.User, "Decreto 107/2022 para Primaria o 110/2022 para ESO")
}

func TestForParameters(t *testing.T) {
	tests := []struct {
		req       requests.Request
		maxTokens int
		temp      float64
		contains  string
	}{
		{&requests.Rubrica{Tema: "Narración", TipoEvaluacion: "Proyecto"}, 3000, 0.6, "- **Tema a evaluar:** Narración"},
		{&requests.Examen{Curso: "2º ESO", Duracion: "50 minutos"}, 4096, 0.6, "responderse en 50 minutos"},
		{&requests.Situacion{DuracionSesiones: 6, CompetenciasClave: []string{"CCL", "STEM"}}, 4096, 0.7, "- **Competencias clave a trabajar:** CCL, STEM"},
		{&requests.Informe{Tono: "Cercano", NombreAlumno: "Lucía"}, 2000, 0.7, "- Usa un lenguaje cercano"},
		{&requests.Ideas{Tema: "Fracciones"}, 2500, 0.8, "Proporciona 5 ideas diferentes"},
		{&requests.Emergencia{Duracion: "55 minutos"}, 2000, 0.7, "Ajusta los tiempos a 55 minutos"},
		{&requests.Problemas{NumeroProblemas: 5, IncluirSoluciones: true}, 3000, 0.7, "- **Incluir soluciones:** Sí"},
	}
	for _, tt := range tests {
		t.Run(string(tt.req.Kind()), func(t *testing.T) {
			p := For(tt.req)
			assert.Equal(t, tt.maxTokens, p.MaxTokens)
			assert.Equal(t, tt.temp, p.Temperature)
			assert.Contains(t, p.User, tt.contains)
			assert.NotEmpty(t, p.Title)
			assert.NotEmpty(t, p.Message)
		})
	}
}

func TestSituacionDuration(t *testing.T) {
	p := For(&requests.Situacion{DuracionSesiones: 8, CompetenciasClave: []string{"CD"}})
	assert.Contains(t, p.User, "- **Duración:** 8 sesiones")
}

func TestProbe(t *testing.T) {
	p := Probe()
	assert.Equal(t, "Eres un asistente útil.", p.System)
	assert.Equal(t, "Responde solo con: OK", p.User)
	assert.Equal(t, 10, p.MaxTokens)
	assert.Zero(t, p.Temperature)
}

func TestWithMaterial(t *testing.T) {
	base := For(&requests.Ideas{Tema: "Plantas"})
	chunks := []chunker.Chunk{
		{Text: "La fotosíntesis convierte luz en energía.", Breadcrumb: []string{"Tema 3", "Fotosíntesis"}, Tokens: 8},
		{Text: "Las raíces absorben agua.", Tokens: 5},
		{Text: strings.Repeat("relleno ", 100), Tokens: 133},
	}

	p := WithMaterial(base, chunks, 20)
	assert.True(t, strings.HasPrefix(p.User, base.User))
	assert.Contains(t, p.User, "## Material de referencia")
	assert.Contains(t, p.User, "### Fragmento 1 (Tema 3 > Fotosíntesis)\nLa fotosíntesis")
	assert.Contains(t, p.User, "### Fragmento 2\nLas raíces absorben agua.")
	assert.NotContains(t, p.User, "relleno")
	assert.Equal(t, base.System, p.System)

	unchanged := WithMaterial(base, nil, 1000)
	assert.Equal(t, base.User, unchanged.User)
}
