package dictionary

import "testing"

func TestCacheLookupInsert(t *testing.T) {
	cache := NewCache()

	if _, exists := cache.Lookup(MizoToEnglish, "tlawm"); exists {
		t.Fatal("lookup on an empty cache should miss")
	}

	cache.Insert(MizoToEnglish, "tlawm", "humble")
	value, exists := cache.Lookup(MizoToEnglish, "tlawm")
	if !exists || value != "humble" {
		t.Fatalf("unexpected lookup result: %q exists=%t", value, exists)
	}

	// The two directions are independent stores.
	if _, exists := cache.Lookup(EnglishToMizo, "tlawm"); exists {
		t.Fatal("entry leaked into the other direction")
	}

	cache.Insert(MizoToEnglish, "tlawm", "meek")
	value, _ = cache.Lookup(MizoToEnglish, "tlawm")
	if value != "meek" {
		t.Fatalf("insert should overwrite, got %q", value)
	}
}

func TestCacheSizeAndClear(t *testing.T) {
	cache := NewCache()
	cache.Insert(MizoToEnglish, "tlawm", "humble")
	cache.Insert(MizoToEnglish, "hmangaihna", "love")
	cache.Insert(EnglishToMizo, "hello", "chibai")

	if got := cache.Size(MizoToEnglish); got != 2 {
		t.Fatalf("mizo-to-en size = %d, want 2", got)
	}
	if got := cache.Size(EnglishToMizo); got != 1 {
		t.Fatalf("en-to-mizo size = %d, want 1", got)
	}

	cache.Clear()

	if got := cache.Size(MizoToEnglish); got != 0 {
		t.Fatalf("mizo-to-en size after clear = %d, want 0", got)
	}
	if got := cache.Size(EnglishToMizo); got != 0 {
		t.Fatalf("en-to-mizo size after clear = %d, want 0", got)
	}
	if _, exists := cache.Lookup(MizoToEnglish, "tlawm"); exists {
		t.Fatal("entry survived clear")
	}
}
