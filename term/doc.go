// Package term renders hearts in a terminal through tcell.
//
// Each cell stands for CellWidth x CellHeight surface pixels, so particle
// motion written for a pixel surface keeps its proportions. Colors are sent
// as truecolor; faded particles are drawn dim and vanish near zero alpha.
//
//	screen, _ := tcell.NewScreen()
//	_ = screen.Init()
//	sf := term.NewSurface(screen)
//	tl := hearts.NewTimeline()
//	m := hearts.New(sf, tl)
//	m.BindMouseFollow(sf.RootTarget(), hearts.FollowOptions{})
//	err := term.Run(ctx, screen, &term.App{Surface: sf, Timeline: tl}, 0)
package term
