package main

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
)

func sceneCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	configFile, preset = "", ""
	cmd := &cobra.Command{Use: "test"}
	addSceneFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestResolveConfigPresetOverFile(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "run.yaml")
	g.Expect(os.WriteFile(path, []byte("scheme: dual\ninput: mine.pdb\nlimit: 7\n"), 0644)).To(Succeed())

	cmd := sceneCommand(t, "--config", path, "--preset", "draft", "--limit", "8")
	cfg, err := resolveConfig(cmd, nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Input).To(Equal("mine.pdb"))
	g.Expect(cfg.Samples).To(Equal(11))
	g.Expect(cfg.Limit).To(Equal(8.0))
}

func TestResolveConfigRejects(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "run.yaml")
	g.Expect(os.WriteFile(path, []byte("scheme: single\n"), 0644)).To(Succeed())

	_, err := resolveConfig(sceneCommand(t, "--preset", "nonexistent"), []string{"dual"})
	g.Expect(err).To(MatchError(ContainSubstring("unknown preset")))

	_, err = resolveConfig(sceneCommand(t, "--config", path), []string{"dual"})
	g.Expect(err).To(MatchError(ContainSubstring("not dual")))
}
