// Package router drives a pile.Pile from screen navigation.
//
// Screens are typed identifiers with a builder that turns an input into
// the element to show. Navigating forward pushes the built element,
// going back pops it, and the router keeps the screen and input of every
// element so the application can tell where it is.
//
// # Basic Usage
//
//	const (
//	    ScreenList router.Screen = iota
//	    ScreenDetail
//	)
//
//	p := pile.New(stage, pile.NewAnimator(60), pile.Options{})
//	r := router.New(p)
//
//	r.Register(ScreenList, func(input any) (pile.Element, error) {
//	    return newListCard(input.([]Item)), nil
//	})
//	r.Register(ScreenDetail, func(input any) (pile.Element, error) {
//	    return newDetailCard(input.(Item)), nil
//	})
//
//	_ = r.Reset(router.Target{Screen: ScreenList, Input: items})
//	_ = r.Navigate(ScreenDetail, items[0]) // pushes, animated
//	r.Back()                               // pops back to the list
//
// # History
//
// The router's Stack mirrors the pile: one entry per element, bottom
// first. Back refuses to pop the last entry, matching the pile, which
// never pops its last element.
package router
