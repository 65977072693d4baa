package app

import (
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/process"
	"go.uber.org/zap"

	"github.com/bjo163/pairlink/internal/domain"
	"github.com/bjo163/pairlink/pkg/metrics"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
		go a.SchedProcessMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@every 10m", func() {
		a.SchedClearExpireData()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@every 5m", func() {
		a.SchedRelayGaugeTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSystemMonitorTask system monitor
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	// Collect CPU usage
	_cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(_cpuuse) > 0 {
		metrics.SetGauge(metrics.SystemCPUUsage, int64(_cpuuse[0]*100)) // Store as percentage * 100
	}

	// Collect memory usage
	_meminfo, err := mem.VirtualMemory()
	if err == nil {
		metrics.SetGauge(metrics.SystemMemUsage, int64(_meminfo.Used/1024/1024))
	}
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}

	cpuuse, err := p.CPUPercent()
	if err == nil {
		metrics.SetGauge("pairlink_cpuuse", int64(cpuuse*100)) // Store as percentage * 100
	}

	meminfo, err := p.MemoryInfo()
	if err == nil {
		metrics.SetGauge("pairlink_memuse", int64(meminfo.RSS/1024/1024))
	}
}

// SchedClearExpireData sweeps subscriptions whose browser-reported expiration
// has passed. Dead endpoints discovered during dispatch are pruned inline;
// this catches the ones that expire without ever being pushed to.
func (a *Application) SchedClearExpireData() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	res := a.gormDB.
		Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Delete(&domain.Subscription{})
	if res.Error != nil {
		zap.L().Error("expired subscription sweep failed", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		metrics.IncrCounter(metrics.PushPruned, res.RowsAffected)
		zap.L().Info("swept expired subscriptions", zap.Int64("count", res.RowsAffected))
	}
}

// SchedRelayGaugeTask records pairing and subscription totals.
func (a *Application) SchedRelayGaugeTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	var pairings int64
	if err := a.gormDB.Model(&domain.Pairing{}).Count(&pairings).Error; err == nil {
		metrics.SetGauge(metrics.PairingTotal, pairings)
	}

	var subs int64
	if err := a.gormDB.Model(&domain.Subscription{}).Count(&subs).Error; err == nil {
		metrics.SetGauge(metrics.SubscriptionTotal, subs)
	}
}
