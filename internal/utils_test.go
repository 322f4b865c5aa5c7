package internal

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testData struct {
	Name string
}

func TestMergeMaps(t *testing.T) {
	map1 := map[string]int{"one": 1, "two": 2}
	map2 := map[string]int{"three": 3, "four": 4}
	map3 := map[string]int{"two": 22}

	expected := map[string]int{
		"one":   1,
		"two":   22,
		"three": 3,
		"four":  4,
	}

	result := MergeMaps(map1, map2, map3)

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, but got %v", expected, result)
	}
}

func TestParsePrompt(t *testing.T) {
	testCases := []struct {
		name           string
		promptTemplate string
		data           interface{}
		expected       string
		expectedErr    error
	}{
		{
			name:           "Valid template and data",
			promptTemplate: "Hello, my name is {{.Name}}.",
			data:           testData{Name: "Ravi"},
			expected:       "Hello, my name is Ravi.",
			expectedErr:    nil,
		},
		{
			name:           "Sprig functions",
			promptTemplate: "{{ .Name | upper }} {{ default \"Not available\" \"\" }}",
			data:           testData{Name: "kharif"},
			expected:       "KHARIF Not available",
			expectedErr:    nil,
		},
		{
			name:           "Invalid template",
			promptTemplate: "Hello, my name is {{.Name.",
			data:           testData{Name: "Ravi"},
			expected:       "",
			expectedErr:    errors.New("template: prompt:1: unexpected"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParsePrompt(tc.promptTemplate, tc.data)
			assert.Equal(t, tc.expected, result)
			if tc.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.expectedErr.Error())
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", TruncateRunes("abc", 0))
	assert.Equal(t, "abc", TruncateRunes("abc", 10))
	assert.Equal(t, "धान", TruncateRunes("धान की खेती", 3))
}

func TestPrettyJSON(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1\n}", PrettyJSON(map[string]int{"a": 1}))
	assert.Equal(t, "{}", PrettyJSON(make(chan int)))
}
