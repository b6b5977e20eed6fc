package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocations_AddPromotesToList(t *testing.T) {
	loc := NewLocation("packages/main/src")

	same := loc.Add("packages/main/src")
	require.False(t, same.IsList())
	require.Equal(t, []string{"packages/main/src"}, same.Paths())

	promoted := loc.Add("packages/fake/Classes")
	require.True(t, promoted.IsList())
	require.Equal(t, []string{"packages/main/src", "packages/fake/Classes"}, promoted.Paths())

	again := promoted.Add("packages/fake/Classes")
	require.Equal(t, []string{"packages/main/src", "packages/fake/Classes"}, again.Paths())
}

func TestNamespaceMap_MarshalKeepsOrderAndShape(t *testing.T) {
	m := NewNamespaceMap()
	m.Set(`Zeta\`, NewLocation("z"))
	m.Set(`Alpha\`, NewLocationList("a1", "a2"))
	m.Set(`Single\`, NewLocationList("s"))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `{"Zeta\\":"z","Alpha\\":["a1","a2"],"Single\\":["s"]}`, string(data))
}

func TestAutoload_MarshalOnlyPresentSections(t *testing.T) {
	a := Autoload{}
	a.EnsureNamespaces(AutoloadPSR4).Set(`Vendor\Package\`, NewLocation("packages/fake/Classes"))
	a.AppendList(AutoloadClassmap, "vendor/x.php")

	data, err := json.Marshal(a)
	require.NoError(t, err)
	require.Equal(t, `{"psr-4":{"Vendor\\Package\\":"packages/fake/Classes"},"classmap":["vendor/x.php"]}`, string(data))
}

func TestAutoload_AppendListSkipsDuplicates(t *testing.T) {
	a := Autoload{}
	require.True(t, a.AppendList(AutoloadFiles, "a.php"))
	require.False(t, a.AppendList(AutoloadFiles, "a.php"))
	require.Equal(t, []string{"a.php"}, a.Files)
}

func TestObject_DeleteAndClone(t *testing.T) {
	o := NewObject()
	o.Set("b", "1")
	o.Set("a", []any{"x", true, nil})
	nested := NewObject()
	nested.Set("k", json.Number("3"))
	o.Set("c", nested)

	clone := o.Clone()
	o.Delete("b")
	nested.Set("k", "changed")

	require.Equal(t, []string{"a", "c"}, o.Keys())
	data, err := json.Marshal(clone)
	require.NoError(t, err)
	require.Equal(t, `{"b":"1","a":["x",true,null],"c":{"k":3}}`, string(data))
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode(" Autoload-DEV ")
	require.NoError(t, err)
	require.Equal(t, ModeAutoloadDev, mode)

	_, err = ParseMode("psr-4")
	require.Error(t, err)
}

func TestTypeFilter(t *testing.T) {
	filter := ParseTypeFilter([]string{"typo3-cms-extension, library", ""})
	require.Equal(t, TypeFilter{"typo3-cms-extension", "library"}, filter)
	require.True(t, filter.Matches("library"))
	require.False(t, filter.Matches("project"))
	require.True(t, TypeFilter(nil).Matches("anything"))
}

func TestPackage_RequiresPackage(t *testing.T) {
	root := NewPackage("project/root", "project")
	root.Requires = []string{"php"}
	root.DevRequires = []string{"vendor/fixture"}

	require.True(t, root.RequiresPackage("vendor/fixture"))
	require.False(t, root.RequiresPackage("vendor/other"))
}
