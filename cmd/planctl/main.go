// Command planctl 离线运行可行性分析与排程，输入为 YAML 计划文件。
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/praveensharma0809/planner-app/internal/planner"
)

func main() {
	file := flag.String("file", "plan.yaml", "path to the YAML plan file")
	mode := flag.String("mode", "", "strict or auto (overrides the file)")
	addMinutes := flag.Int("add-minutes", 0, "re-run with this many extra daily minutes")
	maxDays := flag.Int("days", 14, "number of scheduled days to print (0 prints all)")
	flag.Parse()

	pf, err := loadPlanFile(*file)
	if err != nil {
		die("%v", err)
	}
	in, err := pf.toInput(*mode, time.Now())
	if err != nil {
		die("%v", err)
	}

	fmt.Print(renderReport(in, run(in, *addMinutes), *maxDays))
}

// run 执行分析；delta>0 时走调整重试路径
func run(in *planInput, delta int) planner.PlanStatus {
	if delta > 0 {
		return planner.ResolveOverload(in.subjects, in.daily, in.today, in.mode,
			planner.IncreaseDailyMinutes{DeltaMinutes: delta}, in.opts)
	}
	return planner.AnalyzePlan(in.subjects, in.daily, in.today, in.mode, in.opts)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "planctl: "+format+"\n", args...)
	os.Exit(1)
}
