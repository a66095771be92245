package fioparse

import (
	"strings"
	"testing"
)

// fullReport exercises one instance of every line kind the parser knows.
const fullReport = `fio-3.28
randread4k: Laying out IO file (1 file / 1024MiB)
randread4k: (g=0): rw=randread, bs=(R) 4096B-4096B, (W) 4096B-4096B, (T) 4096B-4096B, ioengine=libaio, iodepth=32

randread4k: (groupid=0, jobs=1): err= 0: pid=2211: Tue Mar  5 10:12:01 2024
  read: IOPS=12.8k, BW=50.0MiB/s (52.4MB/s)(1500MiB/30001msec)
    slat (nsec): min=1287, max=94012, avg=2250.33, stdev=801.12
    clat (usec): min=309, max=9350, avg=2489.51, stdev=221.87
     lat (usec): min=312, max=9354, avg=2491.88, stdev=222.01
    clat percentiles (usec):
     |  1.00th=[ 2114],  5.00th=[ 2245], 10.00th=[ 2278], 50.00th=[ 2474],
     | 99.00th=[ 3097], 99.90th=[ 3785], 99.95th=[ 4228], 99.99th=[ 6521]
   bw (  KiB/s): min=48128, max=53248, per=100.00%, avg=51200.00, stdev=1024.00, samples=59
   iops        : min=12032, max=13312, avg=12800.00, stdev=256.00, samples=59
  lat (usec)   : 500=0.01%, 750=0.02%, 1000=0.05%
  lat (msec)   : 2=1.92%, 4=97.88%, 10=0.12%
  cpu          : usr=1.51%, sys=5.02%, ctx=32012, majf=0, minf=1224
  IO depths    : 1=0.1%, 2=0.1%, 4=0.1%, 8=0.1%, 16=0.1%, 32=99.6%, >=64=0.0%
     submit    : 0=0.0%, 4=100.0%, 8=0.0%, 16=0.0%, 32=0.0%, 64=0.0%, >=64=0.0%
     complete  : 0=0.0%, 4=100.0%, 8=0.0%, 16=0.0%, 32=0.1%, 64=0.0%, >=64=0.0%
     issued rwts: total=384012,0,0,0 short=0,0,0,0 dropped=0,0,0,0
     latency   : target=0, window=0, percentile=100.00%, depth=32

Run status group 0 (all jobs):
   READ: bw=50.0MiB/s (52.4MB/s), 50.0MiB/s-50.0MiB/s (52.4MB/s-52.4MB/s), io=1500MiB (1573MB), run=30001-30001msec

Disk stats (read/write):
  sda: ios=382911/24, merge=0/11, ticks=940312/18, in_queue=940330, util=99.12%
  sdb: ios=120/4, merge=0/0, ticks=310/2, in_queue=312, util=0.04%
`

func TestParse_EveryLineKind(t *testing.T) {
	rec, err := ParseString(fullReport)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"fio_version":  "3.28",
		"layout_files": "1",
		"layout_size":  "1024MiB",
		"job_name":     "randread4k",
		"rw":           "randread",
		"ioengine":     "libaio",
		"iodepth":      "32",
		"bs_r":         "4096B-4096B",
		"bs_w":         "4096B-4096B",
		"bs_t":         "4096B-4096B",
		"groupid":      "0",
		"jobs":         "1",
		"err":          "0",
		"pid":          "2211",
		"timestamp":    "Tue Mar  5 10:12:01 2024",

		"read_iops": "12.8k",
		"read_bw":   "50.0MiB/s (52.4MB/s)(1500MiB/30001msec)",

		"slat_min":       "1287",
		"slat_avg":       "2250.33",
		"clat_avg":       "2489.51",
		"lat_usec_avg":   "2491.88",
		"lat_usec_500":   "0.01%",
		"lat_msec_4":     "97.88%",
		"bw_avg":         "51200.00",
		"bw_per":         "100.00%",
		"iops_avg":       "12800.00",
		"iops_samples":   "59",
		"cpu_usr":        "1.51%",
		"cpu_ctx":        "32012",
		"iodepth_dist_1": "0.1%",

		"clat_pct_1.00th":  "2114",
		"clat_pct_99.99th": "6521",

		"iodepth_dist_>=64": "0.0%",
		"submit_4":          "100.0%",
		"submit_>=64":       "0.0%",
		"complete_32":       "0.1%",

		"issued_total":   "384012,0,0,0",
		"issued_short":   "0,0,0,0",
		"issued_dropped": "0,0,0,0",

		"latency_cfg_target":     "0",
		"latency_cfg_percentile": "100.00%",
		"latency_cfg_depth":      "32",

		"run_read_bw":  "50.0MiB/s (52.4MB/s)",
		"run_read_io":  "1500MiB (1573MB)",
		"run_read_run": "30001-30001msec",

		"disk_sda_ios_read":   "382911",
		"disk_sda_ios_write":  "24",
		"disk_sda_merge_read": "0",
		"disk_sda_in_queue":   "940330",
		"disk_sda_util":       "99.12%",
		"disk_sdb_ios_read":   "120",
		"disk_sdb_util":       "0.04%",
	}

	for key, value := range want {
		got, ok := rec.Get(key)
		if !ok {
			t.Errorf("missing key %q", key)
			continue
		}
		if got != value {
			t.Errorf("%s = %q, want %q", key, got, value)
		}
	}
}

func TestParse_OrderPreserved(t *testing.T) {
	rec, err := ParseString(fullReport)
	if err != nil {
		t.Fatal(err)
	}

	pos := make(map[string]int)
	for i, f := range rec.Fields() {
		pos[f.Key] = i
	}

	// Keys must appear in input line order.
	order := []string{
		"fio_version", "layout_files", "job_name", "groupid",
		"read_iops", "slat_min", "clat_min", "lat_usec_min",
		"clat_pct_1.00th", "bw_min", "iops_min", "cpu_usr",
		"iodepth_dist_1", "submit_0", "complete_0", "issued_total",
		"latency_cfg_target", "run_read_bw",
		"disk_sda_ios_read", "disk_sdb_ios_read",
	}
	for i := 1; i < len(order); i++ {
		a, b := order[i-1], order[i]
		pa, oka := pos[a]
		pb, okb := pos[b]
		if !oka || !okb {
			t.Fatalf("missing key %q or %q", a, b)
		}
		if pa >= pb {
			t.Errorf("key %q (pos %d) should precede %q (pos %d)", a, pa, b, pb)
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	first, err := ParseString(fullReport)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ParseString(fullReport)
	if err != nil {
		t.Fatal(err)
	}

	if first.Len() != second.Len() {
		t.Fatalf("field counts differ: %d vs %d", first.Len(), second.Len())
	}
	for i, f := range first.Fields() {
		g := second.Fields()[i]
		if f != g {
			t.Errorf("field %d differs: %v vs %v", i, f, g)
		}
	}
}

func TestParse_GarbageLinesIgnored(t *testing.T) {
	garbage := []string{
		"Starting 1 process",
		"Jobs: 1 (f=1): [r(1)][100.0%][r=50.0MiB/s][r=12.8k IOPS][eta 00m:00s]",
		"random garbage with no structure",
	}

	var interleaved strings.Builder
	for i, line := range strings.Split(fullReport, "\n") {
		interleaved.WriteString(line + "\n")
		if i < len(garbage) {
			interleaved.WriteString(garbage[i] + "\n")
		}
	}

	clean, err := ParseString(fullReport)
	if err != nil {
		t.Fatal(err)
	}
	dirty, err := ParseString(interleaved.String())
	if err != nil {
		t.Fatal(err)
	}

	if clean.Len() != dirty.Len() {
		t.Fatalf("garbage lines changed field count: %d vs %d", clean.Len(), dirty.Len())
	}
	for i, f := range clean.Fields() {
		if g := dirty.Fields()[i]; f != g {
			t.Errorf("field %d differs with garbage present: %v vs %v", i, f, g)
		}
	}
}

func TestParse_PercentileTableEndsAtNonRow(t *testing.T) {
	input := "clat percentiles (usec):\n" +
		" |  1.00th=[  334],  5.00th=[  348]\n" +
		"   bw (  KiB/s): min=100, max=200\n"
	rec, err := ParseString(input)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := rec.Get("clat_pct_5.00th"); !ok || v != "348" {
		t.Errorf("clat_pct_5.00th = %q, %v", v, ok)
	}
	// The bw line after the table must be classified normally.
	if v, ok := rec.Get("bw_min"); !ok || v != "100" {
		t.Errorf("bw_min = %q, %v", v, ok)
	}
}

func TestParse_BlankLineEndsDiskSection(t *testing.T) {
	input := "Disk stats (read/write):\n" +
		"  sda: ios=5/1, util=0.01%\n" +
		"\n" +
		"  sdb: ios=9/2, util=0.02%\n"
	rec, err := ParseString(input)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rec.Get("disk_sda_util"); !ok {
		t.Error("expected disk_sda_util")
	}
	if _, ok := rec.Get("disk_sdb_util"); ok {
		t.Error("disk section should end at blank line")
	}
}

func TestParse_MalformedSubFieldsDropped(t *testing.T) {
	// "min=" has no value, "=42" has no key; both vanish.
	rec, err := ParseString("  cpu          : usr=1.0%, min=, =42, sys=2.0%\n")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rec.Get("cpu_min"); ok {
		t.Error("valueless sub-field should be dropped")
	}
	if v, _ := rec.Get("cpu_usr"); v != "1.0%" {
		t.Errorf("cpu_usr = %q", v)
	}
	if v, _ := rec.Get("cpu_sys"); v != "2.0%" {
		t.Errorf("cpu_sys = %q", v)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	rec, err := ParseString("")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Len() != 0 {
		t.Errorf("expected empty record, got %d fields", rec.Len())
	}
}
