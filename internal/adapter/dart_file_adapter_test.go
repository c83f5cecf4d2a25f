package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "keylens.dev/pkg/keylens/internal/model"
)

func TestExtractKeys(t *testing.T) {
	src := `import 'package:flutter/material.dart';

class LoginScreen extends StatelessWidget {
  Widget build(BuildContext context) {
    return Column(children: [
      TextField(key: const Key('emailField')),
      TextField(key: Key("passwordField")),
      ElevatedButton(key: const ValueKey('loginButton'), onPressed: _submit),
    ]);
  }
}
`

	adapter := NewLocalDartFileAdapter()
	records := adapter.ExtractKeys("lib/login.dart", []byte(src))

	require.Len(t, records, 3)

	assert.Equal(t, m.KeyRecord{Name: "emailField", Category: m.CategoryKey, FilePath: "lib/login.dart", Line: 6}, records[0])
	assert.Equal(t, m.KeyRecord{Name: "passwordField", Category: m.CategoryKey, FilePath: "lib/login.dart", Line: 7}, records[1])
	assert.Equal(t, m.KeyRecord{Name: "loginButton", Category: m.CategoryValueKey, FilePath: "lib/login.dart", Line: 8}, records[2])
}

func TestExtractKeys_FinderIsSingleRecord(t *testing.T) {
	src := `expect(find.byKey(const Key('loginButton')), findsOneWidget);`

	records := NewLocalDartFileAdapter().ExtractKeys("test/login_test.dart", []byte(src))

	// find.byKey(Key(...)) must not also count as a plain Key occurrence.
	require.Len(t, records, 1)
	assert.Equal(t, "loginButton", records[0].Name)
	assert.Equal(t, m.CategoryFinder, records[0].Category)
	assert.Equal(t, 1, records[0].Line)
}

func TestExtractKeys_FinderWithValueKey(t *testing.T) {
	src := `await tester.tap(find.byKey(ValueKey("todoList")));`

	records := NewLocalDartFileAdapter().ExtractKeys("t.dart", []byte(src))

	require.Len(t, records, 1)
	assert.Equal(t, "todoList", records[0].Name)
	assert.Equal(t, m.CategoryFinder, records[0].Category)
}

func TestExtractKeys_TypedValueKey(t *testing.T) {
	src := `Container(key: const ValueKey<String>('profileCard'))`

	records := NewLocalDartFileAdapter().ExtractKeys("a.dart", []byte(src))

	require.Len(t, records, 1)
	assert.Equal(t, "profileCard", records[0].Name)
	assert.Equal(t, m.CategoryValueKey, records[0].Category)
}

func TestExtractKeys_MultipleOnOneLine(t *testing.T) {
	src := `Row(children: [Text('a', key: Key('aText')), Text('b', key: Key('bText'))])`

	records := NewLocalDartFileAdapter().ExtractKeys("a.dart", []byte(src))

	require.Len(t, records, 2)
	assert.Equal(t, "aText", records[0].Name)
	assert.Equal(t, "bText", records[1].Name)
}

func TestExtractKeys_SkipsNonLiterals(t *testing.T) {
	src := `Widget row(int i) => ListTile(key: Key('item_$i'), key2: Key(widget.name), key3: GlobalKey());`

	records := NewLocalDartFileAdapter().ExtractKeys("a.dart", []byte(src))

	// 'item_$i' is interpolated, Key(widget.name) has no literal, and
	// GlobalKey() carries no name at all.
	assert.Empty(t, records)
}

func TestExtractKeys_ValueKeyNotDoubleCounted(t *testing.T) {
	src := `ValueKey('onlyOnce')`

	records := NewLocalDartFileAdapter().ExtractKeys("a.dart", []byte(src))

	require.Len(t, records, 1)
	assert.Equal(t, m.CategoryValueKey, records[0].Category)
}

func TestExtractKeys_EmptySource(t *testing.T) {
	records := NewLocalDartFileAdapter().ExtractKeys("a.dart", nil)
	assert.Empty(t, records)
}

func TestExtractKeys_NormalizesPathSeparators(t *testing.T) {
	records := NewLocalDartFileAdapter().ExtractKeys(m.Path("lib/widgets/card.dart"), []byte(`Key('infoCard')`))

	require.Len(t, records, 1)
	assert.Equal(t, m.Path("lib/widgets/card.dart"), records[0].FilePath)
}

func TestIsDartSource(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"lib/main.dart", true},
		{"lib/login_test.dart", true},
		{"lib/model.g.dart", false},
		{"lib/model.freezed.dart", false},
		{"lib/main.go", false},
		{"README.md", false},
	}

	adapter := NewLocalDartFileAdapter()

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.IsDartSource(m.Path(tt.path)))
		})
	}
}
