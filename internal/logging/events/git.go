package events

import "github.com/atomicstack/cli-launcher/internal/logging"

type GitTracer struct{}

var Git = GitTracer{}

func (GitTracer) Select(index int, label string) {
	logging.Trace("git.select", map[string]interface{}{"index": index, "label": label})
}

func (GitTracer) NoRepo(subcommand string) {
	logging.Trace("git.no-repo", map[string]interface{}{"subcommand": subcommand})
}

func (GitTracer) Request(cwd string, args []string) {
	logging.Trace("git.request", map[string]interface{}{"cwd": cwd, "args": args})
}

func (GitTracer) Result(cwd string, args []string, outputLen int, err error) {
	payload := map[string]interface{}{"cwd": cwd, "args": args, "output_len": outputLen}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("git.result", payload)
}

func (GitTracer) Poll(cwd string, err error) {
	payload := map[string]interface{}{"cwd": cwd}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("git.poll", payload)
}
