package history

import (
	"fmt"
	"testing"
	"time"
)

func TestLog_RecordAndPop(t *testing.T) {
	log := NewLog(10)
	now := time.Now()

	first := log.Record("/a/1.txt", "/a/Documents/1.txt", now)
	second := log.Record("/a/2.txt", "/a/Documents/2.txt", now.Add(time.Second))

	if first == nil || second == nil {
		t.Fatal("Expected actions to be recorded")
	}
	if first.ID == "" || first.ID == second.ID {
		t.Error("Expected unique action IDs")
	}
	if log.Len() != 2 {
		t.Fatalf("Expected 2 actions, got %d", log.Len())
	}

	tail, ok := log.Peek()
	if !ok || tail.OriginalPath != "/a/2.txt" {
		t.Errorf("Peek() = %+v, want the most recent action", tail)
	}

	popped, ok := log.Pop()
	if !ok || popped.OriginalPath != "/a/2.txt" {
		t.Errorf("Pop() = %+v", popped)
	}
	popped, ok = log.Pop()
	if !ok || popped.OriginalPath != "/a/1.txt" {
		t.Errorf("Pop() = %+v", popped)
	}
	if _, ok := log.Pop(); ok {
		t.Error("Expected empty log")
	}
}

func TestLog_CapacityNeverEvicts(t *testing.T) {
	log := NewLog(3)

	for i := 0; i < 5; i++ {
		action := log.Record(fmt.Sprintf("/src/%d", i), fmt.Sprintf("/dst/%d", i), time.Now())
		if i < 3 && action == nil {
			t.Errorf("Expected action %d to be recorded", i)
		}
		if i >= 3 && action != nil {
			t.Errorf("Expected action %d to be dropped when full", i)
		}
	}

	if !log.Full() {
		t.Error("Expected log to be full")
	}

	snapshot := log.Snapshot()
	if len(snapshot) != 3 || snapshot[0].OriginalPath != "/src/0" || snapshot[2].OriginalPath != "/src/2" {
		t.Errorf("Unexpected snapshot: %+v", snapshot)
	}
}

func TestLog_UpdateAndDrop(t *testing.T) {
	log := NewLog(5)

	first := log.Record("/a", "/b/a", time.Now())
	second := log.Record("/c", "/b/c", time.Now())

	log.UpdateNewPath(second, "/b/c (1)")
	if tail, _ := log.Peek(); tail.NewPath != "/b/c (1)" {
		t.Errorf("Expected updated new path, got %s", tail.NewPath)
	}

	if log.Drop(first) {
		t.Error("Drop should only remove the tail action")
	}
	if !log.Drop(second) {
		t.Error("Expected tail action to be dropped")
	}
	if log.Len() != 1 {
		t.Errorf("Expected 1 action left, got %d", log.Len())
	}
	if log.Drop(nil) {
		t.Error("Drop(nil) should be a no-op")
	}
}

func TestNewLog_DefaultCapacity(t *testing.T) {
	if got := NewLog(0).Capacity(); got != 100 {
		t.Errorf("Expected default capacity 100, got %d", got)
	}
}
