package requests

import "fmt"

// Kind names a document type. Its value is the path segment used by the API.
type Kind string

const (
	KindUnidad     Kind = "unidad"
	KindRubrica    Kind = "rubrica"
	KindExamen     Kind = "examen"
	KindSituacion  Kind = "situacion"
	KindInforme    Kind = "informe"
	KindIdeas      Kind = "ideas"
	KindEmergencia Kind = "emergencia"
	KindProblemas  Kind = "problemas-matematicas"
)

var allKinds = []Kind{
	KindUnidad, KindRubrica, KindExamen, KindSituacion,
	KindInforme, KindIdeas, KindEmergencia, KindProblemas,
}

// Kinds lists every document type.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

func ParseKind(s string) (Kind, error) {
	for _, k := range allKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("tipo de documento desconocido: %q", s)
}

// New returns an empty request value for kind.
func New(kind Kind) (Request, error) {
	switch kind {
	case KindUnidad:
		return &Unidad{}, nil
	case KindRubrica:
		return &Rubrica{}, nil
	case KindExamen:
		return &Examen{}, nil
	case KindSituacion:
		return &Situacion{}, nil
	case KindInforme:
		return &Informe{}, nil
	case KindIdeas:
		return &Ideas{}, nil
	case KindEmergencia:
		return &Emergencia{}, nil
	case KindProblemas:
		return &Problemas{}, nil
	}
	return nil, fmt.Errorf("tipo de documento desconocido: %q", kind)
}
