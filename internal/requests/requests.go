// Package requests defines the input of every document type and validates it.
package requests

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Request is one validated generation input.
type Request interface {
	Kind() Kind
	Validate() error
	// Subject is a short label for logs and titles.
	Subject() string
	Material() string
	normalize()
}

// Reference carries optional source material pasted or uploaded by the
// docente. It is embedded in every request type.
type Reference struct {
	MaterialReferencia string `json:"material_referencia,omitempty"`
}

func (r Reference) Material() string { return r.MaterialReferencia }

// Decode strictly decodes a JSON body into kind's request type, trims its
// text fields and validates it.
func Decode(kind Kind, r io.Reader) (Request, error) {
	req, err := New(kind)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if dec.More() {
		return nil, &DecodeError{Err: errors.New("unexpected data after JSON object")}
	}
	req.normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// DecodeRaw is Decode over an already buffered body.
func DecodeRaw(kind Kind, raw json.RawMessage) (Request, error) {
	return Decode(kind, bytes.NewReader(raw))
}

// DecodeError reports a body that is not valid JSON for the kind.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("JSON no válido: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Describe flattens a validation error into one line of "field: message"
// pairs sorted by field name.
func Describe(err error) string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	return strings.TrimSuffix(verrs.Error(), ".")
}

type Unidad struct {
	Nivel                string `json:"nivel"`
	Curso                string `json:"curso"`
	Asignatura           string `json:"asignatura"`
	Tema                 string `json:"tema"`
	CaracteristicasGrupo string `json:"caracteristicas_grupo,omitempty"`
	Reference
}

func (u *Unidad) Kind() Kind      { return KindUnidad }
func (u *Unidad) Subject() string { return u.Asignatura + ": " + u.Tema }

func (u *Unidad) normalize() {
	trimAll(&u.Nivel, &u.Curso, &u.Asignatura, &u.Tema, &u.CaracteristicasGrupo, &u.MaterialReferencia)
}

func (u *Unidad) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Nivel, shortText()...),
		validation.Field(&u.Curso, shortText()...),
		validation.Field(&u.Asignatura, shortText()...),
		validation.Field(&u.Tema, longText()...),
		validation.Field(&u.CaracteristicasGrupo, optionalText()...),
		validation.Field(&u.MaterialReferencia, materialRules()...),
	)
}

type Rubrica struct {
	Nivel          string `json:"nivel"`
	Curso          string `json:"curso"`
	Asignatura     string `json:"asignatura"`
	Tema           string `json:"tema"`
	TipoEvaluacion string `json:"tipo_evaluacion"`
	Reference
}

func (r *Rubrica) Kind() Kind      { return KindRubrica }
func (r *Rubrica) Subject() string { return r.Asignatura + ": " + r.Tema }

func (r *Rubrica) normalize() {
	trimAll(&r.Nivel, &r.Curso, &r.Asignatura, &r.Tema, &r.TipoEvaluacion, &r.MaterialReferencia)
}

func (r *Rubrica) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Nivel, shortText()...),
		validation.Field(&r.Curso, shortText()...),
		validation.Field(&r.Asignatura, shortText()...),
		validation.Field(&r.Tema, longText()...),
		validation.Field(&r.TipoEvaluacion, shortText()...),
		validation.Field(&r.MaterialReferencia, materialRules()...),
	)
}

type Examen struct {
	Nivel      string `json:"nivel"`
	Curso      string `json:"curso"`
	Asignatura string `json:"asignatura"`
	Tema       string `json:"tema"`
	TipoExamen string `json:"tipo_examen"`
	Dificultad string `json:"dificultad"`
	Duracion   string `json:"duracion"`
	Reference
}

func (e *Examen) Kind() Kind      { return KindExamen }
func (e *Examen) Subject() string { return e.Asignatura + ": " + e.Tema }

func (e *Examen) normalize() {
	trimAll(&e.Nivel, &e.Curso, &e.Asignatura, &e.Tema, &e.TipoExamen, &e.Dificultad, &e.Duracion, &e.MaterialReferencia)
}

func (e *Examen) Validate() error {
	return validation.ValidateStruct(e,
		validation.Field(&e.Nivel, shortText()...),
		validation.Field(&e.Curso, shortText()...),
		validation.Field(&e.Asignatura, shortText()...),
		validation.Field(&e.Tema, longText()...),
		validation.Field(&e.TipoExamen, shortText()...),
		validation.Field(&e.Dificultad, shortText()...),
		validation.Field(&e.Duracion, shortText()...),
		validation.Field(&e.MaterialReferencia, materialRules()...),
	)
}

type Situacion struct {
	Nivel             string   `json:"nivel"`
	Curso             string   `json:"curso"`
	Asignatura        string   `json:"asignatura"`
	Contexto          string   `json:"contexto"`
	Metodologia       string   `json:"metodologia"`
	DuracionSesiones  int      `json:"duracion_sesiones"`
	CompetenciasClave []string `json:"competencias_clave"`
	Reference
}

func (s *Situacion) Kind() Kind      { return KindSituacion }
func (s *Situacion) Subject() string { return s.Asignatura + ": " + s.Contexto }

func (s *Situacion) normalize() {
	trimAll(&s.Nivel, &s.Curso, &s.Asignatura, &s.Contexto, &s.Metodologia, &s.MaterialReferencia)
	kept := s.CompetenciasClave[:0]
	for _, c := range s.CompetenciasClave {
		if c = strings.TrimSpace(c); c != "" {
			kept = append(kept, c)
		}
	}
	s.CompetenciasClave = kept
}

func (s *Situacion) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Nivel, shortText()...),
		validation.Field(&s.Curso, shortText()...),
		validation.Field(&s.Asignatura, shortText()...),
		validation.Field(&s.Contexto, longText()...),
		validation.Field(&s.Metodologia, shortText()...),
		validation.Field(&s.DuracionSesiones, required, validation.Min(1), validation.Max(60)),
		validation.Field(&s.CompetenciasClave,
			validation.Required.Error("debe incluir al menos una competencia"),
			validation.Length(1, 8),
			validation.Each(validation.RuneLength(1, maxShortText), screened),
		),
		validation.Field(&s.MaterialReferencia, materialRules()...),
	)
}

type Informe struct {
	Nivel             string `json:"nivel"`
	Curso             string `json:"curso"`
	Asignatura        string `json:"asignatura"`
	NombreAlumno      string `json:"nombre_alumno"`
	AspectosPositivos string `json:"aspectos_positivos"`
	AspectosMejora    string `json:"aspectos_mejora"`
	Tono              string `json:"tono"`
	Reference
}

func (i *Informe) Kind() Kind      { return KindInforme }
func (i *Informe) Subject() string { return i.Asignatura + ": " + i.NombreAlumno }

func (i *Informe) normalize() {
	trimAll(&i.Nivel, &i.Curso, &i.Asignatura, &i.NombreAlumno, &i.AspectosPositivos, &i.AspectosMejora, &i.Tono, &i.MaterialReferencia)
}

func (i *Informe) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.Nivel, shortText()...),
		validation.Field(&i.Curso, shortText()...),
		validation.Field(&i.Asignatura, shortText()...),
		validation.Field(&i.NombreAlumno, shortText()...),
		validation.Field(&i.AspectosPositivos, longText()...),
		validation.Field(&i.AspectosMejora, longText()...),
		validation.Field(&i.Tono, shortText()...),
		validation.Field(&i.MaterialReferencia, materialRules()...),
	)
}

type Ideas struct {
	Nivel         string `json:"nivel"`
	Curso         string `json:"curso"`
	Asignatura    string `json:"asignatura"`
	Tema          string `json:"tema"`
	TipoActividad string `json:"tipo_actividad"`
	Reference
}

func (i *Ideas) Kind() Kind      { return KindIdeas }
func (i *Ideas) Subject() string { return i.Asignatura + ": " + i.Tema }

func (i *Ideas) normalize() {
	trimAll(&i.Nivel, &i.Curso, &i.Asignatura, &i.Tema, &i.TipoActividad, &i.MaterialReferencia)
}

func (i *Ideas) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.Nivel, shortText()...),
		validation.Field(&i.Curso, shortText()...),
		validation.Field(&i.Asignatura, shortText()...),
		validation.Field(&i.Tema, longText()...),
		validation.Field(&i.TipoActividad, shortText()...),
		validation.Field(&i.MaterialReferencia, materialRules()...),
	)
}

// Emergencia asks for a ready-to-use activity when a docente must cover a
// class without preparation.
type Emergencia struct {
	Nivel      string `json:"nivel"`
	Curso      string `json:"curso"`
	Asignatura string `json:"asignatura"`
	Situacion  string `json:"situacion"`
	Duracion   string `json:"duracion"`
	Reference
}

func (e *Emergencia) Kind() Kind      { return KindEmergencia }
func (e *Emergencia) Subject() string { return e.Asignatura + ": " + e.Situacion }

func (e *Emergencia) normalize() {
	trimAll(&e.Nivel, &e.Curso, &e.Asignatura, &e.Situacion, &e.Duracion, &e.MaterialReferencia)
}

func (e *Emergencia) Validate() error {
	return validation.ValidateStruct(e,
		validation.Field(&e.Nivel, shortText()...),
		validation.Field(&e.Curso, shortText()...),
		validation.Field(&e.Asignatura, shortText()...),
		validation.Field(&e.Situacion, longText()...),
		validation.Field(&e.Duracion, shortText()...),
		validation.Field(&e.MaterialReferencia, materialRules()...),
	)
}

type Problemas struct {
	Nivel             string `json:"nivel"`
	Curso             string `json:"curso"`
	Tematica          string `json:"tematica"`
	Dificultad        string `json:"dificultad"`
	NumeroProblemas   int    `json:"numero_problemas"`
	IncluirSoluciones bool   `json:"incluir_soluciones"`
	Contexto          string `json:"contexto,omitempty"`
	Reference
}

func (p *Problemas) Kind() Kind      { return KindProblemas }
func (p *Problemas) Subject() string { return "Matemáticas: " + p.Tematica }

func (p *Problemas) normalize() {
	trimAll(&p.Nivel, &p.Curso, &p.Tematica, &p.Dificultad, &p.Contexto, &p.MaterialReferencia)
}

func (p *Problemas) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Nivel, shortText()...),
		validation.Field(&p.Curso, shortText()...),
		validation.Field(&p.Tematica, longText()...),
		validation.Field(&p.Dificultad, shortText()...),
		validation.Field(&p.NumeroProblemas, required, validation.Min(1), validation.Max(20)),
		validation.Field(&p.Contexto, optionalText()...),
		validation.Field(&p.MaterialReferencia, materialRules()...),
	)
}
