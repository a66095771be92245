package consolidated

import "testing"

func TestParse_MultipleRuns(t *testing.T) {
	input := "~~~~~~~ RUN #1 ~~~~~~~\n" +
		"-- result_a.parsed.txt --\n" +
		"job_name = a\n" +
		"-- result_b.parsed.txt --\n" +
		"job_name = b\n" +
		"~~~~~~~ RUN #2 ~~~~~~~\n" +
		"-- result_a.parsed.txt --\n" +
		"job_name = a\n"
	sections, err := Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	if sections[0].Run != 1 || sections[1].Run != 1 || sections[2].Run != 2 {
		t.Errorf("run numbers = %d,%d,%d", sections[0].Run, sections[1].Run, sections[2].Run)
	}
	if sections[1].Name != "result_b.parsed.txt" {
		t.Errorf("name = %q", sections[1].Name)
	}
	if string(sections[2].Body) != "job_name = a" {
		t.Errorf("body = %q", sections[2].Body)
	}
}

func TestParse_BodyBeforeFirstDelimiterDiscarded(t *testing.T) {
	input := "stray line\n" +
		"-- orphan.txt --\n" +
		"job_name = orphan\n" +
		"~~~~~~~ RUN #1 ~~~~~~~\n" +
		"-- result.txt --\n" +
		"job_name = a\n"
	sections, err := Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if sections[0].Name != "result.txt" {
		t.Errorf("name = %q", sections[0].Name)
	}
}

func TestParse_EmptySectionKept(t *testing.T) {
	input := "~~~~~~~ RUN #1 ~~~~~~~\n" +
		"-- empty.txt --\n" +
		"-- full.txt --\n" +
		"job_name = x\n"
	sections, err := Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if len(sections[0].Body) != 0 {
		t.Errorf("empty section body = %q", sections[0].Body)
	}
}

func TestParse_RawReportBody(t *testing.T) {
	input := "~~~~~~~ RUN #3 ~~~~~~~\n" +
		"-- result_rand_read_4k.txt --\n" +
		"fio-3.28\n" +
		"job: (g=0): rw=randread, ioengine=libaio, iodepth=32\n"
	sections, err := Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if sections[0].Run != 3 {
		t.Errorf("run = %d, want 3", sections[0].Run)
	}
	want := "fio-3.28\njob: (g=0): rw=randread, ioengine=libaio, iodepth=32"
	if string(sections[0].Body) != want {
		t.Errorf("body = %q", sections[0].Body)
	}
}

func TestParse_NoSections(t *testing.T) {
	if _, err := Parse([]byte("just some text\n")); err == nil {
		t.Error("expected error for input without sections")
	}
}
