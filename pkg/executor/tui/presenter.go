package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/scribby/pkg/actions"
	"github.com/entrhq/scribby/pkg/pipeline"
	"github.com/entrhq/scribby/pkg/types"
)

// programPresenter forwards dispatcher state changes into the Bubble Tea
// event loop. The dispatcher runs inside a tea.Cmd, so Send never races the
// loop it feeds.
type programPresenter struct {
	send func(tea.Msg)
}

var _ pipeline.Presenter = (*programPresenter)(nil)

func (p *programPresenter) PromptCredential()                 { p.send(promptCredentialMsg{}) }
func (p *programPresenter) OpenIntakeForm()                   { p.send(openFormMsg{}) }
func (p *programPresenter) ShowLoading(action actions.Action) { p.send(loadingMsg{action: action}) }
func (p *programPresenter) HideLoading()                      { p.send(hideLoadingMsg{}) }
func (p *programPresenter) ShowResult(result types.Result)    { p.send(resultMsg{result: result}) }
