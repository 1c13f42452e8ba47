package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var builtinSeeds = []string{
	"",
	"x = 1\n",
	"a = 1; b = 2  # nac3: pair\n",
	"# nac3: top\nif x:\n    pass\nelif y:\n    pass\nelse:\n    pass\n",
	"def f(a, /, b, *, c=1, **kw):\n    # nac3: inner\n    return a\n",
	"@d\nclass C(B, metaclass=M):\n    x: int = 0\n",
	"for i in range(3):\n    yield i\nelse:\n    break\n",
	"    # nac3: misaligned\nx = 1\n",
	"s = f'{a!r:>{w}}' + b'\\x00' + '''multi\nline'''\n",
	"x = (1,\n     2)  # nac3: tail\n",
	"async def g():\n    async with a as b:\n        await b\n",
	"if x:\n\tpass\n",
	"\"\"\"doc\"\"\"\ndel a[1:2, ::3], b.c\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.py файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".py" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
