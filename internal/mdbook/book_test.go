package mdbook

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBookJSON = `{
  "sections": [
    {
      "Chapter": {
        "name": "Introduction",
        "content": "# Introduction\n",
        "number": [1],
        "sub_items": [
          {
            "Chapter": {
              "name": "Details",
              "content": "nested",
              "number": [1, 1],
              "sub_items": [],
              "path": "intro/details.md",
              "source_path": "intro/details.md",
              "parent_names": ["Introduction"]
            }
          }
        ],
        "path": "intro.md",
        "source_path": "intro.md",
        "parent_names": []
      }
    },
    "Separator",
    {"PartTitle": "Annexes"},
    {
      "Chapter": {
        "name": "Draft",
        "content": "",
        "number": null,
        "sub_items": [],
        "path": null,
        "source_path": null,
        "parent_names": []
      }
    }
  ],
  "__non_exhaustive": null
}`

func TestBookUnmarshal(t *testing.T) {
	var book Book
	require.NoError(t, json.Unmarshal([]byte(sampleBookJSON), &book))
	require.Len(t, book.Sections, 4)

	intro := book.Sections[0].Chapter
	require.NotNil(t, intro)
	assert.Equal(t, "Introduction", intro.Name)
	assert.Equal(t, []uint32{1}, intro.Number)
	require.Len(t, intro.SubItems, 1)
	assert.Equal(t, "Details", intro.SubItems[0].Chapter.Name)

	assert.True(t, book.Sections[1].Separator)
	assert.Equal(t, "Annexes", book.Sections[2].PartTitle)

	draft := book.Sections[3].Chapter
	require.NotNil(t, draft)
	assert.Nil(t, draft.Path)
}

func TestBookRoundTrip(t *testing.T) {
	var book Book
	require.NoError(t, json.Unmarshal([]byte(sampleBookJSON), &book))

	encoded, err := json.Marshal(&book)
	require.NoError(t, err)

	var again Book
	require.NoError(t, json.Unmarshal(encoded, &again))
	assert.Equal(t, book, again)

	// The wire shape mdbook reads back must keep the enum encoding
	// and the non-exhaustive marker.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &raw))
	assert.Contains(t, raw, "sections")
	assert.Contains(t, raw, "__non_exhaustive")
	assert.Equal(t, "null", string(raw["__non_exhaustive"]))
}

func TestBookItemUnknownVariant(t *testing.T) {
	var item BookItem
	assert.Error(t, json.Unmarshal([]byte(`"Mystery"`), &item))
	assert.Error(t, json.Unmarshal([]byte(`{"Mystery": 1}`), &item))
}

func TestChapterMarshalNormalizesNilSlices(t *testing.T) {
	encoded, err := json.Marshal(&Chapter{Name: "New"})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &raw))
	assert.Equal(t, "[]", string(raw["sub_items"]))
	assert.Equal(t, "[]", string(raw["parent_names"]))
	assert.Equal(t, "null", string(raw["number"]))
	assert.Equal(t, "null", string(raw["path"]))
}

func TestForEachChapterOrder(t *testing.T) {
	var book Book
	require.NoError(t, json.Unmarshal([]byte(sampleBookJSON), &book))

	var visited []string
	book.ForEachChapter(func(ch *Chapter) {
		visited = append(visited, ch.Title())
	})

	assert.Equal(t, []string{"Introduction", "Details", "Draft"}, visited)
}

func TestChapterTitleFallback(t *testing.T) {
	path := "ch/memory.md"
	tests := []struct {
		name    string
		chapter Chapter
		want    string
	}{
		{"named", Chapter{Name: "Memory"}, "Memory"},
		{"path derived", Chapter{Path: &path}, "memory"},
		{"neither", Chapter{}, "(untitled)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.chapter.Title())
		})
	}
}
