package faker_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yeisme/mockmoments/pkg/internal/faker"
)

func newFaker(t *testing.T) *faker.Faker {
	t.Helper()

	f, err := faker.New(0, "en")
	if err != nil {
		t.Fatalf("create faker: %v", err)
	}

	return f
}

// TestNewLocale 测试语言校验.
func TestNewLocale(t *testing.T) {
	if _, err := faker.New(1, "ko"); !errors.Is(err, faker.ErrUnsupportedLocale) {
		t.Errorf("expected ErrUnsupportedLocale, got %v", err)
	}

	f, err := faker.New(1, "")
	if err != nil {
		t.Fatalf("empty locale should default to en, got %v", err)
	}

	if f.Locale() != "en" {
		t.Errorf("expected locale en, got %s", f.Locale())
	}
}

// TestNumberHalfOpen 测试 Number 为左闭右开区间.
func TestNumberHalfOpen(t *testing.T) {
	f := newFaker(t)

	for i := 0; i < 1000; i++ {
		n := f.Number(0, 3)
		if n < 0 || n >= 3 {
			t.Fatalf("Number(0,3) returned %d", n)
		}
	}

	if n := f.Number(0, 1); n != 0 {
		t.Errorf("Number(0,1) must be 0, got %d", n)
	}

	if n := f.Number(5, 5); n != 5 {
		t.Errorf("Number(5,5) must be 5, got %d", n)
	}
}

// TestBetweenHalfOpen 测试 Between 的区间.
func TestBetweenHalfOpen(t *testing.T) {
	f := newFaker(t)
	start := time.Now().Add(-time.Hour)
	end := start.Add(time.Minute)

	for i := 0; i < 1000; i++ {
		got := f.Between(start, end)
		if got.Before(start) || !got.Before(end) {
			t.Fatalf("Between returned %v outside [%v, %v)", got, start, end)
		}
	}

	if got := f.Between(end, start); !got.Equal(end) {
		t.Errorf("inverted range should return start, got %v", got)
	}
}

// TestStrings 测试字符串字段非空.
func TestStrings(t *testing.T) {
	f := newFaker(t)

	if !strings.Contains(f.Email(), "@") {
		t.Error("Email should contain @")
	}

	if f.Password() == "" || f.Username() == "" || f.URL() == "" {
		t.Error("Password, Username and URL must not be empty")
	}

	if !strings.Contains(f.FileName(), ".") {
		t.Errorf("FileName should have an extension, got %q", f.FileName())
	}

	if words := strings.Fields(f.Sentence(5)); len(words) < 5 {
		t.Errorf("Sentence(5) should have at least 5 words, got %d", len(words))
	}
}

// TestSeedReproducible 测试相同种子生成相同序列.
func TestSeedReproducible(t *testing.T) {
	a, _ := faker.New(42, "en")
	b, _ := faker.New(42, "en")

	for i := 0; i < 10; i++ {
		if a.Number(0, 1000) != b.Number(0, 1000) {
			t.Fatal("same seed should produce the same numbers")
		}
	}
}
