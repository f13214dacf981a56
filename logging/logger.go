package logging

import (
	"fmt"
	"os"
	"sync"
	"time"
)

type Level int

const (
	FATAL Level = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

type Record struct {
	Level     Level
	Component string
	Message   string
}

func Infof(msg string, args ...interface{}) {
	defaultLogBroker.Records <- Record{INFO, "", fmt.Sprintf(msg, args...)}
}

func Warnf(msg string, args ...interface{}) {
	defaultLogBroker.Records <- Record{WARNING, "", fmt.Sprintf(msg, args...)}
}

func Errorf(msg string, args ...interface{}) {
	defaultLogBroker.Records <- Record{ERROR, "", fmt.Sprintf(msg, args...)}
}

func SetQuiet(quiet bool) {
	defaultLogBroker.SetQuiet(quiet)
}

type Logger struct {
	Component string
}

func NewLogger(component string) *Logger {
	return &Logger{component}
}

func (l *Logger) Print(args ...interface{}) {
	defaultLogBroker.Records <- Record{INFO, l.Component, fmt.Sprint(args...)}
}

func (l *Logger) Printf(msg string, args ...interface{}) {
	defaultLogBroker.Records <- Record{INFO, l.Component, fmt.Sprintf(msg, args...)}
}

func (l *Logger) Warnf(msg string, args ...interface{}) {
	defaultLogBroker.Records <- Record{WARNING, l.Component, fmt.Sprintf(msg, args...)}
}

func (l *Logger) Errorf(msg string, args ...interface{}) {
	defaultLogBroker.Records <- Record{ERROR, l.Component, fmt.Sprintf(msg, args...)}
}

func (l *Logger) Fatal(args ...interface{}) {
	defaultLogBroker.Records <- Record{FATAL, l.Component, fmt.Sprint(args...)}
	Shutdown()
	os.Exit(1)
}

func (l *Logger) Fatalf(msg string, args ...interface{}) {
	defaultLogBroker.Records <- Record{FATAL, l.Component, fmt.Sprintf(msg, args...)}
	Shutdown()
	os.Exit(1)
}

func (l *Logger) StartStep(msg string) string {
	defaultLogBroker.StepStart <- Step{l.Component, msg}
	return msg
}

func (l *Logger) StopStep(msg string) {
	defaultLogBroker.StepStop <- Step{l.Component, msg}
}

type Step struct {
	Component string
	Name      string
}

type LogBroker struct {
	Records   chan Record
	StepStart chan Step
	StepStop  chan Step
	quiet     bool
	quit      chan bool
	wg        *sync.WaitGroup
}

func (l *LogBroker) SetQuiet(quiet bool) {
	l.quiet = quiet
}

func (l *LogBroker) loop() {
	l.wg.Add(1)
	steps := make(map[Step]time.Time)
For:
	for {
		select {
		case record := <-l.Records:
			l.printRecord(record)
		case step := <-l.StepStart:
			steps[step] = time.Now()
			if !l.quiet {
				l.printRecord(Record{INFO, step.Component, step.Name})
			}
		case step := <-l.StepStop:
			startTime := steps[step]
			delete(steps, step)
			duration := time.Since(startTime)
			if !l.quiet {
				l.printRecord(Record{INFO, step.Component, step.Name + " took: " + duration.String()})
			}
		case <-l.quit:
			break For
		}
	}
Flush:
	// after quit, print all records from chan
	for {
		select {
		case record := <-l.Records:
			l.printRecord(record)
		default:
			break Flush
		}
	}
	l.wg.Done()
}

func (l *LogBroker) printRecord(record Record) {
	if l.quiet && record.Level > WARNING {
		return
	}
	fmt.Print("[", time.Now().Format(time.Stamp), "] ")
	if record.Component != "" {
		fmt.Print("[", record.Component, "] ")
	}
	fmt.Println(record.Message)
}

func Shutdown() {
	defaultLogBroker.quit <- true
	defaultLogBroker.wg.Wait()
}

var defaultLogBroker LogBroker

func init() {
	defaultLogBroker = LogBroker{
		Records:   make(chan Record, 8),
		StepStart: make(chan Step),
		StepStop:  make(chan Step),
		quit:      make(chan bool),
		wg:        &sync.WaitGroup{},
	}
	go defaultLogBroker.loop()
}
