package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"educa-tennis-api/internal/domain/entity"
)

func TestBuildContextSessionHeader(t *testing.T) {
	pages := []*entity.ProgramPage{
		{
			Content:     "Parte inicial: calentamiento 10 min",
			SectionType: entity.SectionSession,
			Trimester:   1,
			Week:        2,
			Session:     3,
		},
	}

	got := BuildContext(pages)
	assert.Equal(t, "[TRIMESTRE 1 · SEMANA 2 · SESIÓN 3]\nParte inicial: calentamiento 10 min", got)
}

func TestBuildContextConceptualPassThrough(t *testing.T) {
	pages := []*entity.ProgramPage{
		{Content: "La metodología se basa en juegos.", SectionType: entity.SectionConceptual},
	}

	got := BuildContext(pages)
	assert.Equal(t, "La metodología se basa en juegos.", got)
}

func TestBuildContextSeparatorAndSkips(t *testing.T) {
	pages := []*entity.ProgramPage{
		{Content: "bloque uno", SectionType: entity.SectionConceptual},
		nil,
		{Content: "   ", SectionType: entity.SectionConceptual},
		{Content: "bloque dos", SectionType: entity.SectionConceptual},
	}

	got := BuildContext(pages)
	assert.Equal(t, "bloque uno\n\n---\n\nbloque dos", got)
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil))
}
