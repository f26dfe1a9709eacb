package interp

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/TrainFun/cxc/build"
)

func runProgram(t *testing.T, src, input string, stepLimit int) (string, uint32, error) {
	t.Helper()

	result := build.Compile(strings.NewReader(src), "test.cx", nil)
	if !result.OK() {
		t.Fatalf("unexpected compile errors: %v", result.Errors)
	}

	out := &bytes.Buffer{}
	m := New(result.Module, strings.NewReader(input), out)
	m.StepLimit = stepLimit

	code, err := m.Run("main")
	return out.String(), code, err
}

func TestRunPrograms(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		input  string
		output string
		code   uint32
	}{
		{
			"switch fallthrough",
			`int main() {
				int x = 1;
				switch (x) {
					case 1: write 1;
					case 2: write 2; break;
					case 3: write 3;
				}
				return 0;
			}`,
			"", "1\n2\n", 0,
		},
		{
			"default position",
			`int main() {
				switch (3) {
					default: write 0;
					case 3: write 3;
				}
				switch (5) {
					default: write 0;
					case 3: write 3;
				}
				return 0;
			}`,
			"", "3\n0\n3\n", 0,
		},
		{
			"shared case labels",
			`int main() {
				for (int i = 0; i < 4; ++i)
					switch (i) {
						case 0: case 2: write 10; break;
						default: write i;
					}
				return 0;
			}`,
			"", "10\n1\n10\n3\n", 0,
		},
		{
			"bool switch",
			`int main() {
				switch (2 > 1) {
					case false: write 0; break;
					case true: write 1; break;
				}
				return 0;
			}`,
			"", "1\n", 0,
		},
		{
			"unsigned arithmetic",
			`int main() {
				write 0 - 1;
				write 3 / 2;
				write 1 % 2;
				write 7 / 2 * 2;
				write cast<int>(0 - 1 > 1);
				return 0;
			}`,
			"", "4294967295\n1\n1\n6\n1\n", 0,
		},
		{
			"double arithmetic",
			`int main() {
				write 1.5 * 2.0;
				write 1.0 / 4.0;
				write cast<int>(2.5 < 3.0);
				write cast<int>(2.5 == 2.5);
				return 0;
			}`,
			"", "3.000000\n0.250000\n1\n1\n", 0,
		},
		{
			"no short circuit",
			`int n = 0;
			bool bump() { n = n + 1; return true; }
			int main() {
				bool b = false && bump();
				bool c = true || bump();
				write n;
				write b;
				write c;
				return 0;
			}`,
			"", "2\n0\n1\n", 0,
		},
		{
			"prefix increment and decrement",
			`int main() {
				int x = 5;
				write ++x;
				write x;
				write --x;
				double d = 1.5;
				write ++d;
				write x = 9;
				return 0;
			}`,
			"", "6\n6\n5\n2.500000\n9\n", 0,
		},
		{
			"casts",
			`int main() {
				write cast<int>(3.9);
				write cast<bool>(2);
				write cast<double>(true);
				write cast<int>(cast<bool>(0.0));
				write cast<double>(7);
				write cast<int>(ODD 3);
				write cast<int>(ODD 4);
				write cast<int>(!(1 == 1));
				return 0;
			}`,
			"", "3\n1\n1.000000\n0\n7.000000\n1\n0\n0\n", 0,
		},
		{
			"shadowing",
			`int g = 10;
			int main() {
				write g;
				{
					int g = 20;
					write g;
				}
				write g;
				for (int g = 1; g < 2; ++g) write g;
				write g;
				return 0;
			}`,
			"", "10\n20\n10\n1\n10\n", 0,
		},
		{
			"read",
			`int main() {
				int a;
				double d;
				bool b;
				read a;
				read d;
				read b;
				write a + 1;
				write d;
				write b;
				return 0;
			}`,
			"42 7.5\n3\n", "43\n7.500000\n1\n", 0,
		},
		{
			"loops",
			`int main() {
				int sum = 0;
				for (int i = 0; i < 5; ++i) sum = sum + i;
				write sum;
				int k = 0;
				repeat ++k; until (k == 3);
				write k;
				do {
					k = k - 1;
					if (k == 1) continue;
					write k;
				} while (k > 0);
				while (true) { break; }
				for (;;) { if (sum > 12) break; ++sum; }
				return sum;
			}`,
			"", "10\n3\n2\n0\n", 13,
		},
		{
			"exit",
			`int main() {
				write 1;
				exit 3;
				write 2;
				return 0;
			}`,
			"", "1\n", 3,
		},
		{
			"recursion through a prototype",
			`int fib(int n);
			int main() { return fib(10); }
			int fib(int n) {
				if (n < 2) return n;
				return fib(n - 1) + fib(n - 2);
			}`,
			"", "", 55,
		},
		{
			"implicit zero return",
			`double f() { }
			bool g() { }
			int main() {
				write f();
				write g();
				return 0;
			}`,
			"", "0.000000\n0\n", 0,
		},
		{
			"globals",
			`const int c = 4;
			double scale = 0.5;
			bool flag;
			int main() {
				scale = scale * 2.0;
				write scale;
				write flag;
				return c;
			}`,
			"", "1.000000\n0\n", 4,
		},
	}

	for _, tt := range tests {
		output, code, err := runProgram(t, tt.src, tt.input, 0)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}

		if output != tt.output {
			t.Errorf("%s: expected output %q, got=%q", tt.name, tt.output, output)
		}

		if code != tt.code {
			t.Errorf("%s: expected exit code %d, got=%d", tt.name, tt.code, code)
		}
	}
}

func TestRunFaults(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		stepLimit int
		want      string
	}{
		{
			"division by zero",
			`int main() { int z = 0; write 1 / z; return 0; }`,
			0, "integer division by zero",
		},
		{
			"remainder by zero",
			`int main() { int z = 0; write 1 % z; return 0; }`,
			0, "integer division by zero",
		},
		{
			"step limit",
			`int main() { while (true) {} return 0; }`,
			1000, "step limit of 1000 exceeded",
		},
		{
			"undefined function",
			`int f(); int main() { return f(); }`,
			0, "declared but never defined",
		},
		{
			"out of range conversion",
			`int main() { return cast<int>(0.0 - 2.0); }`,
			0, "out of range",
		},
	}

	for _, tt := range tests {
		_, _, err := runProgram(t, tt.src, "", tt.stepLimit)
		if err == nil {
			t.Errorf("%s: expected an error", tt.name)
			continue
		}

		var rerr *RuntimeError
		if !errors.As(err, &rerr) {
			t.Errorf("%s: expected a runtime error, got=%T", tt.name, err)
		}

		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got=%q", tt.name, tt.want, err.Error())
		}
	}
}

func TestRunEntry(t *testing.T) {
	result := build.Compile(strings.NewReader("int f(int x) { return x; } double g() { return 1.0; }"), "test.cx", nil)
	if !result.OK() {
		t.Fatalf("unexpected compile errors: %v", result.Errors)
	}

	for _, entry := range []string{"main", "f", "g", "printf"} {
		m := New(result.Module, strings.NewReader(""), &bytes.Buffer{})
		if _, err := m.Run(entry); err == nil {
			t.Errorf("%s: expected an error", entry)
		}
	}
}
