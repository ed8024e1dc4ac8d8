package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	// An mb-hello extension printing the environment it receives.
	helloSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvDataDir, EnvDataDir, EnvCurrency, EnvCurrency, EnvVerbose, EnvVerbose)

	srcFile := filepath.Join(tempDir, "mb-hello.go")
	require.NoError(t, os.WriteFile(srcFile, []byte(helloSource), 0644))

	build := exec.Command("go", "build", "-o", filepath.Join(tempDir, "mb-hello"), srcFile)
	build.Stderr = os.Stderr
	require.NoError(t, build.Run(), "compiling mb-hello")

	mbPath := filepath.Join(tempDir, "mb")
	build = exec.Command("go", "build", "-o", mbPath, "../mb")
	build.Stderr = os.Stderr
	require.NoError(t, build.Run(), "compiling mb")

	dataDir := filepath.Join(tempDir, "bank")
	mb := exec.Command(mbPath, "-data-dir", dataDir, "-currency", "EUR", "-v", "hello", "world")
	mb.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}
	var stdout, stderr bytes.Buffer
	mb.Stdout = &stdout
	mb.Stderr = &stderr
	require.NoError(t, mb.Run(), "stderr: %s", stderr.String())

	output := stdout.String()
	assert.Contains(t, output, EnvDataDir+"="+dataDir)
	assert.Contains(t, output, EnvCurrency+"=EUR")
	assert.Contains(t, output, EnvVerbose+"=true")
	assert.Contains(t, output, "args=[world]")
}

func TestRunExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	found, code := RunExtension("does-not-exist", nil)
	assert.False(t, found)
	assert.Equal(t, 0, code)
}
