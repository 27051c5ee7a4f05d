package main

// defaultMarkup is the page the demo runs when no -markup flag is given:
// a bordered panel with a title, a status line driven by dynamic content,
// a scrollable log list (`<list>`), and a footer that reacts to hover and
// click (spec §6 tag grammar, exercised end to end).
const defaultMarkup = `
<page name="home">
  <element>
    <element-config>
      <width-fixed at="60"/>
      <height-fixed at="20"/>
      <direction is="ttb"/>
      <padding-all is="1"/>
      <child-gap is="1"/>
      <color is="#1e1e2e"/>
      <border-all is="1"/>
      <border-color is="#89b4fa"/>
    </element-config>

    <text-element>
      <text-config>
        <dyn-content from="title"/>
      </text-config>
    </text-element>

    <element id="status-row">
      <element-config>
        <height-fixed at="1"/>
        <direction is="ltr"/>
      </element-config>
      <text-element>
        <text-config>
          <dyn-content from="status"/>
        </text-config>
      </text-element>
    </element>

    <element id="log-scroll">
      <element-config>
        <height-grow/>
        <scroll vertical="true"/>
      </element-config>
      <list src="logs">
        <element>
          <element-config>
            <height-fixed at="1"/>
          </element-config>
          <text-element>
            <text-config>
              <dyn-content from="log_line"/>
            </text-config>
          </text-element>
        </element>
      </list>
    </element>

    <element>
      <element-config>
        <height-fixed at="1"/>
      </element-config>
      <hovered>
        <text-element>
          <content>hovering — click me</content>
        </text-element>
      </hovered>
      <clicked emit="footer_clicked">
        <text-element>
          <content>clicked!</content>
        </text-element>
      </clicked>
    </element>
  </element>
</page>
`
