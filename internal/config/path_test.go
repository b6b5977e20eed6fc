package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "root", in: "/", want: "/"},
		{name: "all slashes", in: "////", want: "/"},
		{name: "trailing slash", in: "Fixtures/Extensions/", want: "Fixtures/Extensions"},
		{name: "trailing backslash", in: `Fixtures\Extensions\`, want: "Fixtures/Extensions"},
		{name: "drive root", in: "C:/", want: "C:"},
		{name: "drive root backslash", in: `C:\`, want: "C:"},
		{name: "drive path", in: `C:\work\project\`, want: "C:/work/project"},
		{name: "dot segments", in: "Classes/Subfolder/../../src", want: "src"},
		{name: "leading parent kept", in: "../shared/lib/", want: "../shared/lib"},
		{name: "current dir", in: "./", want: ""},
		{name: "absolute", in: "/var/www//project/", want: "/var/www/project"},
		{name: "wildcards untouched", in: "Packages/*/Fixtures/*", want: "Packages/*/Fixtures/*"},
		{name: "unc share", in: `\\server\share\`, want: "/server/share"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePath(tt.in)
			require.Equal(t, tt.want, got)
			require.Equal(t, got, NormalizePath(got), "normalize must be idempotent")
		})
	}
}

func TestIsAbsolutePath(t *testing.T) {
	require.True(t, IsAbsolutePath("/var/www"))
	require.True(t, IsAbsolutePath("C:/work"))
	require.True(t, IsAbsolutePath("c:"))
	require.True(t, IsAbsolutePath(NormalizePath(`\\server\share`)))
	require.False(t, IsAbsolutePath("Fixtures/*"))
	require.False(t, IsAbsolutePath(""))
	require.False(t, IsAbsolutePath("1:/nope"))
}

func TestResolve(t *testing.T) {
	cfg := New("/var/www/project/")
	require.Equal(t, "/var/www/project", cfg.BaseDir())

	require.Equal(t, "/var/www/project", cfg.Resolve(""))
	require.Equal(t, "/var/www/project", cfg.Resolve("./"))
	require.Equal(t, "/opt/fixtures", cfg.Resolve("/opt/fixtures/"))
	require.Equal(t, "C:/fixtures", cfg.Resolve(`C:\fixtures`))
	require.Equal(t, "/var/www/project/Fixtures/Extensions/*", cfg.Resolve(`Fixtures\Extensions\*\`))
	require.Equal(t, "/var/www/project/Fixtures/does-not-exist", cfg.Resolve("Fixtures/does-not-exist"))
}

func TestResolve_RootBaseDir(t *testing.T) {
	cfg := New("/")
	require.Equal(t, "/", cfg.Resolve(""))
	require.Equal(t, "/Fixtures/*", cfg.Resolve("Fixtures/*"))
	require.Equal(t, "/opt/fixtures", cfg.Resolve("/opt/fixtures"))
}
