package freshness

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/henderiw/freshness/pkg/idrange"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"
)

const example = `3-5
10-14
16-20
12-18

1
5
8
11
17
32
`

func TestParse(t *testing.T) {
	cases := map[string]struct {
		input              string
		expectedCountFresh int
		expectedTotalFresh int64
		expectedRanges     []idrange.Range
		expectedErr        bool
		invalidRange       bool
	}{
		"Example": {
			input:              example,
			expectedCountFresh: 3,
			expectedTotalFresh: 14,
			expectedRanges:     []idrange.Range{idrange.New(3, 5), idrange.New(10, 20)},
		},
		"CRLFAndPadding": {
			input:              "\n 3-5\r\n6-9 \r\n\r\n4\r\n10\r\n\r\n",
			expectedCountFresh: 1,
			expectedTotalFresh: 7,
			expectedRanges:     []idrange.Range{idrange.New(3, 9)},
		},
		"RepeatedIDs": {
			input:              "3-5\n\n4\n4\n6\n",
			expectedCountFresh: 2,
			expectedTotalFresh: 3,
			expectedRanges:     []idrange.Range{idrange.New(3, 5)},
		},
		"NoIDs": {
			input:              "3-5\n10-14\n",
			expectedCountFresh: 0,
			expectedTotalFresh: 8,
			expectedRanges:     []idrange.Range{idrange.New(3, 5), idrange.New(10, 14)},
		},
		"Empty": {
			input:              "",
			expectedCountFresh: 0,
			expectedTotalFresh: 0,
			expectedRanges:     []idrange.Range{},
		},
		"ErrorRange": {
			input:       "3-5\nx-9\n\n1\n",
			expectedErr: true,
		},
		"ErrorInvertedRange": {
			input:        "3-5\n9-6\n\n1\n",
			expectedErr:  true,
			invalidRange: true,
		},
		"ErrorID": {
			input:       "3-5\n\n1\n4-4\n",
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db, err := Parse(strings.NewReader(tc.input))
			if tc.expectedErr {
				assert.Error(t, err)
				assert.Equal(t, tc.invalidRange, errors.Is(err, idrange.ErrInvalidRange))
				return
			}
			assert.NoError(t, err)
			if db.CountFresh() != tc.expectedCountFresh {
				t.Errorf("%s: count fresh -want %d, +got: %d\n", name, tc.expectedCountFresh, db.CountFresh())
			}
			if db.TotalFresh() != tc.expectedTotalFresh {
				t.Errorf("%s: total fresh -want %d, +got: %d\n", name, tc.expectedTotalFresh, db.TotalFresh())
			}
			if diff := cmp.Diff(tc.expectedRanges, db.FreshRanges()); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestParseErrorLine(t *testing.T) {
	_, err := Parse(strings.NewReader("3-5\n\n1\nabc\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")
	assert.True(t, errors.Is(err, strconv.ErrSyntax))

	_, err = Parse(strings.NewReader("3-5\n1-99999999999999999999\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.True(t, errors.Is(err, strconv.ErrRange))
}

func TestIngredients(t *testing.T) {
	db, err := Parse(strings.NewReader(example))
	assert.NoError(t, err)

	var got []string
	for _, ingredient := range db.Ingredients() {
		got = append(got, ingredient.String())
	}
	want := []string{
		"Ingredient ID 1 is spoiled",
		"Ingredient ID 5 is fresh",
		"Ingredient ID 8 is spoiled",
		"Ingredient ID 11 is fresh",
		"Ingredient ID 17 is fresh",
		"Ingredient ID 32 is spoiled",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}

	assert.True(t, db.IsFresh(15))
	assert.False(t, db.IsFresh(9))
}

func TestGetByLabel(t *testing.T) {
	db, err := Parse(strings.NewReader(example))
	assert.NoError(t, err)

	cases := map[string]struct {
		status   string
		expected []int64
	}{
		"Fresh": {
			status:   StatusFresh,
			expected: []int64{5, 11, 17},
		},
		"Spoiled": {
			status:   StatusSpoiled,
			expected: []int64{1, 8, 32},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req, err := labels.NewRequirement(LabelStatus, selection.Equals, []string{tc.status})
			assert.NoError(t, err)

			ids := []int64{}
			for _, ingredient := range db.GetByLabel(labels.NewSelector().Add(*req)) {
				ids = append(ids, ingredient.ID)
			}
			if diff := cmp.Diff(tc.expected, ids); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}

	assert.Len(t, db.GetByLabel(labels.Everything()), 6)
}

func TestNewLogs(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := New([]idrange.Range{idrange.New(3, 5), idrange.New(4, 8)}, []int64{1, 4}, WithLogger(l))
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"fresh":"3-8"`)
	assert.Contains(t, buf.String(), `"unique":2`)
}
