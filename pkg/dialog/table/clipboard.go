package table

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// clipboardWriter copies text to the system clipboard. Tests replace it.
var clipboardWriter = copyToClipboard

// clipboardTools lists the copy commands tried per platform, in order.
var clipboardTools = map[string][][]string{
	"darwin":  {{"pbcopy"}},
	"linux":   {{"xclip", "-selection", "clipboard"}, {"xsel", "--clipboard", "--input"}},
	"windows": {{"clip.exe"}},
}

// clipboardCommand picks the first copy command for goos that lookPath finds.
func clipboardCommand(goos string, lookPath func(string) (string, error)) ([]string, error) {
	tools, ok := clipboardTools[goos]
	if !ok {
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
	names := make([]string, len(tools))
	for i, argv := range tools {
		if _, err := lookPath(argv[0]); err == nil {
			return argv, nil
		}
		names[i] = argv[0]
	}
	return nil, fmt.Errorf("no clipboard tool found (install %s)", strings.Join(names, " or "))
}

func copyToClipboard(text string) error {
	argv, err := clipboardCommand(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
