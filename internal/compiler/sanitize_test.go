package compiler

import (
	"errors"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSanitizeSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Sanitize Suite")
}

var _ = Describe("shape classification", func() {
	It("treats export-free text as an anonymous render body", func() {
		canon, err := Sanitize("return 42;")
		Expect(err).NotTo(HaveOccurred())
		Expect(canon.Shape).To(Equal(ShapeBody))
		Expect(canon.CallTarget).To(Equal(CanonicalName))
		Expect(canon.Text).To(ContainSubstring("return 42;"))
		Expect(canon.Text).To(ContainSubstring("function " + CanonicalName))
	})

	It("rewrites a named default-export function and targets its name", func() {
		canon, err := Sanitize("export default function Foo() { return 1; }")
		Expect(err).NotTo(HaveOccurred())
		Expect(canon.Shape).To(Equal(ShapeNamedExport))
		Expect(canon.CallTarget).To(Equal("Foo"))
		Expect(canon.Text).NotTo(ContainSubstring("export"))
		Expect(canon.Text).To(ContainSubstring("function Foo()"))
	})

	It("strips a bare-identifier default export and targets the identifier", func() {
		canon, err := Sanitize("function Foo() { return 1; }\nexport default Foo;")
		Expect(err).NotTo(HaveOccurred())
		Expect(canon.Shape).To(Equal(ShapeIdentifierExport))
		Expect(canon.CallTarget).To(Equal("Foo"))
		Expect(canon.Text).NotTo(ContainSubstring("export"))
	})

	It("binds an anonymous default-export expression to a synthesized name", func() {
		canon, err := Sanitize("export default () => 42;")
		Expect(err).NotTo(HaveOccurred())
		Expect(canon.Shape).To(Equal(ShapeExpressionExport))
		Expect(canon.CallTarget).To(Equal(CanonicalName))
		Expect(canon.Text).To(ContainSubstring("const " + CanonicalName + " = () => 42;"))
	})

	It("rejects multiple default exports", func() {
		_, err := Sanitize("export default function A() {}\nexport default function B() {}")
		Expect(errors.Is(err, ErrShape)).To(BeTrue())
	})
})

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"return 42;",
		"export default function Foo() { return box(); }",
		"function Foo() { return 1; }\nexport default Foo;",
		"export default () => sphere(1);",
	}
	for _, src := range inputs {
		first, err := Sanitize(src)
		if err != nil {
			t.Fatalf("first pass failed for %q: %v", src, err)
		}
		second, err := Sanitize(first.Text)
		if err != nil {
			t.Fatalf("second pass failed for %q: %v", src, err)
		}
		if second.Shape != ShapeCanonical {
			t.Errorf("second pass of %q classified as %v, want canonical", src, second.Shape)
		}
		if second.Text != first.Text {
			t.Errorf("second pass mutated output for %q:\nfirst:\n%s\nsecond:\n%s", src, first.Text, second.Text)
		}
	}
}

func TestSanitizePreservesTrailingDeclarations(t *testing.T) {
	src := `export default function Foo() { return box(); }
function helper() { return 7; }
const extra = helper();`

	canon, err := Sanitize(src)
	if err != nil {
		t.Fatalf("sanitize failed: %v", err)
	}
	if !strings.Contains(canon.Text, "function helper() { return 7; }") {
		t.Error("trailing helper declaration was corrupted")
	}
	if !strings.Contains(canon.Text, "const extra = helper();") {
		t.Error("trailing const declaration was corrupted")
	}
	if canon.CallTarget != "Foo" {
		t.Errorf("call target = %q, want Foo", canon.CallTarget)
	}
}

func TestSanitizeUnmatchedExportWrapper(t *testing.T) {
	_, err := Sanitize("export default function Foo() { box(")
	if !errors.Is(err, ErrShape) {
		t.Errorf("expected ShapeError, got %v", err)
	}
	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected *ShapeError, got %T", err)
	}
}

func TestStripImports(t *testing.T) {
	src := `import { useRef } from 'react';
import * as THREE from 'three'
import {
  Canvas,
  useFrame
} from '@react-three/fiber';
const x = sphere(1);`

	canon, err := Sanitize(src)
	if err != nil {
		t.Fatalf("sanitize failed: %v", err)
	}
	if strings.Contains(canon.Text, "import") {
		t.Errorf("imports not stripped:\n%s", canon.Text)
	}
	if !strings.Contains(canon.Text, "const x = sphere(1);") {
		t.Error("non-import content lost")
	}
}

func TestSanitizeKeepsImportLikeIdentifiers(t *testing.T) {
	canon, err := Sanitize("const importantValue = 3; box();")
	if err != nil {
		t.Fatalf("sanitize failed: %v", err)
	}
	if !strings.Contains(canon.Text, "importantValue") {
		t.Error("identifier starting with 'import' was stripped")
	}
}

func TestSanitizeStringAwareBraceMatching(t *testing.T) {
	src := "export default function Foo() { const s = \"}\"; return box(); }"
	canon, err := Sanitize(src)
	if err != nil {
		t.Fatalf("brace in string literal confused the matcher: %v", err)
	}
	if canon.CallTarget != "Foo" {
		t.Errorf("call target = %q", canon.CallTarget)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("const b = box();"); err != nil {
		t.Errorf("scene usage rejected: %v", err)
	}
	if err := Validate("const x = 1 + 1;"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
